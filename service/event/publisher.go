package event

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/viant/ossim/internal/clock"
	"github.com/viant/ossim/service/messaging"
)

// Publisher emits events carrying T. Events rejected by a full queue are
// counted rather than retried.
type Publisher[T any] struct {
	queue    messaging.Queue[Event[T]]
	anyQueue messaging.Queue[Event[any]]
	dropped  atomic.Int64
}

func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// Publish stamps the event and enqueues it; a Service created publisher also
// mirrors it to the untyped stream.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	if p == nil {
		return nil
	}
	event.CreatedAt = clock.Now()
	if p.anyQueue != nil {
		mirror := &Event[any]{ID: event.ID, Context: event.Context, CreatedAt: event.CreatedAt, Metadata: event.Metadata, Data: event.Data}
		if err := p.anyQueue.Publish(ctx, mirror); errors.Is(err, messaging.ErrQueueFull) {
			p.dropped.Add(1)
		}
	}
	err := p.queue.Publish(ctx, event)
	if errors.Is(err, messaging.ErrQueueFull) {
		p.dropped.Add(1)
	}
	return err
}

// Dropped returns how many events full queues rejected
func (p *Publisher[T]) Dropped() int64 {
	if p == nil {
		return 0
	}
	return p.dropped.Load()
}

// Consume returns the next event, acknowledging it
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
