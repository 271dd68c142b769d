package messaging

import (
	"context"
	"errors"
)

// ErrQueueFull is returned by a queue configured to drop instead of block
var ErrQueueFull = errors.New("queue full")

// Queue carries lifecycle notifications from the scheduler to listeners.
// Publish must not be called with a nil payload.
type Queue[T any] interface {
	Publish(ctx context.Context, t *T) error
	// Consume blocks until a message arrives or ctx is done
	Consume(ctx context.Context) (Message[T], error)
}

// Message is a consumed payload. Exactly one of Ack or Nack may be called;
// a nacked message is redelivered until its retries run out and then moves
// to the dead letter queue.
type Message[T any] interface {
	T() *T
	Ack() error
	Nack(err error) error
}
