package dao

import (
	"context"
)

// Service is a keyed registry. The process registry keeps records for the
// lifetime of the simulator; List returns them ordered by key and narrowed by
// parameters such as StateParameter.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error
	Load(ctx context.Context, id K) (*T, error)
	Delete(ctx context.Context, id K) error
	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
