package event

import (
	"time"

	"github.com/viant/ossim/internal/clock"
	"github.com/viant/ossim/internal/idgen"
)

// Context identifies the process an event is about
type Context struct {
	PID       int    `json:"pid"`
	Name      string `json:"name"`
	EventType string `json:"eventType"`
	Message   string `json:"message,omitempty"`
}

type Event[T any] struct {
	ID        string                 `json:"id"`
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		ID:        idgen.New(),
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

// Type returns the event type or empty string
func (e *Event[T]) Type() string {
	if e == nil || e.Context == nil {
		return ""
	}
	return e.Context.EventType
}
