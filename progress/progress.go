package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/ossim/internal/clock"
)

// Delta represents an incremental counter change emitted by the scheduler
type Delta struct {
	Created      int
	Terminated   int
	Faulted      int
	Killed       int
	Instructions int
	Rounds       int
	Preemptions  int
}

// Progress keeps aggregated counters. It is safe for concurrent use.
type Progress struct {
	StartedAt time.Time

	Created      int
	Terminated   int
	Faulted      int
	Killed       int
	Instructions int
	Rounds       int
	Preemptions  int

	sync.Mutex
	onChange func(Progress)
}

// New creates a tracker
func New() *Progress {
	return &Progress{StartedAt: clock.Now()}
}

// Update applies the delta. The onChange callback, if any, receives a copy
// outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.Created += d.Created
	p.Terminated += d.Terminated
	p.Faulted += d.Faulted
	p.Killed += d.Killed
	p.Instructions += d.Instructions
	p.Rounds += d.Rounds
	p.Preemptions += d.Preemptions
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// Active returns processes created but not yet terminated
func (p *Progress) Active() int {
	snapshot := p.Snapshot()
	return snapshot.Created - snapshot.Terminated
}

// OnChange registers a callback invoked after every Update; nil disables it
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copy() Progress {
	return Progress{
		StartedAt:    p.StartedAt,
		Created:      p.Created,
		Terminated:   p.Terminated,
		Faulted:      p.Faulted,
		Killed:       p.Killed,
		Instructions: p.Instructions,
		Rounds:       p.Rounds,
		Preemptions:  p.Preemptions,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithTracker embeds tracker in a derived context
func WithTracker(ctx context.Context, tracker *Progress) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, trackerKey, tracker)
}

// FromContext extracts the tracker from ctx
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker carried by ctx, if any
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
