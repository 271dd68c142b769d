package process

import "context"

type contextKey string

// ContextKey carries the running process
var ContextKey = contextKey("process")

// NewContext returns ctx carrying p
func NewContext(ctx context.Context, p *Process) context.Context {
	return context.WithValue(ctx, ContextKey, p)
}

// FromContext returns the process carried by ctx
func FromContext(ctx context.Context) (*Process, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(ContextKey).(*Process)
	return p, ok && p != nil
}
