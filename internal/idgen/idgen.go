package idgen

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// NewFunc returns a new globally unique identifier as string. It is a
// variable so tests can stub it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new opaque identifier.
func New() string { return NewFunc() }

// Sequence is a monotonic, never reused integer id source. The zero value
// starts at 1.
type Sequence struct {
	last atomic.Int64
}

// Next returns the next id.
func (s *Sequence) Next() int {
	return int(s.last.Add(1))
}

// Last returns the most recently issued id, or 0 when none was issued.
func (s *Sequence) Last() int {
	return int(s.last.Load())
}

// NewSequence creates a sequence whose first id is start.
func NewSequence(start int) *Sequence {
	ret := &Sequence{}
	if start > 1 {
		ret.last.Store(int64(start - 1))
	}
	return ret
}
