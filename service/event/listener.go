package event

import (
	"context"
	"errors"
	"sync"
)

// Listener dispatches consumed events to a handler on its own goroutine
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		done:      make(chan struct{}),
	}
}

// Stop cancels consumption and waits for the dispatch goroutine to exit
func (l *Listener[T]) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
}

// Start begins dispatching; it is a no-op on subsequent calls
func (l *Listener[T]) Start(ctx context.Context) {
	l.once.Do(func() {
		ctx, l.cancel = context.WithCancel(ctx)
		go l.run(ctx)
	})
}

func (l *Listener[T]) run(ctx context.Context) {
	defer close(l.done)
	for {
		event, err := l.publisher.Consume(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			continue
		}
		if event != nil {
			l.handler(event)
		}
	}
}
