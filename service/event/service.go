package event

import (
	"context"
	"reflect"
	"sync"

	"github.com/viant/ossim/service/messaging/memory"
)

// Service hands out typed publishers and listeners backed by in-memory queues.
// Every typed event is mirrored to an untyped stream observable with SetListener.
type Service struct {
	config          memory.Config
	publisher       *Publisher[any]
	listener        *Listener[any]
	typedPublishers map[reflect.Type]any
	typedListeners  map[reflect.Type]any
	mux             sync.RWMutex
}

// Option customises the event service
type Option func(s *Service)

// WithQueueConfig sets the configuration used for every queue
func WithQueueConfig(config memory.Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// New creates an event service. Queues drop events when full so publishers
// never block on slow listeners.
func New(opts ...Option) *Service {
	config := memory.DefaultConfig()
	config.DropWhenFull = true
	ret := &Service{
		config:          config,
		typedPublishers: make(map[reflect.Type]any),
		typedListeners:  make(map[reflect.Type]any),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.publisher = NewPublisher[any](memory.NewQueue[Event[any]](ret.config))
	return ret
}

// SetListener replaces the listener of the untyped stream
func (s *Service) SetListener(ctx context.Context, handler func(*Event[any])) {
	s.mux.Lock()
	previous := s.listener
	s.listener = NewListener[any](s.publisher, handler)
	listener := s.listener
	s.mux.Unlock()
	if previous != nil {
		previous.Stop()
	}
	listener.Start(ctx)
}

// Close stops every running listener
func (s *Service) Close() {
	s.mux.Lock()
	listeners := []interface{ Stop() }{}
	if s.listener != nil {
		listeners = append(listeners, s.listener)
		s.listener = nil
	}
	for key, l := range s.typedListeners {
		if stopper, ok := l.(interface{ Stop() }); ok {
			listeners = append(listeners, stopper)
		}
		delete(s.typedListeners, key)
	}
	s.mux.Unlock()
	for _, l := range listeners {
		l.Stop()
	}
}

func keyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// SetListenerOf replaces the listener for events carrying T
func SetListenerOf[T any](ctx context.Context, s *Service, handler func(*Event[T])) {
	key := keyOf[T]()
	publisher := PublisherOf[T](s)
	listener := NewListener[T](publisher, handler)
	s.mux.Lock()
	previous, ok := s.typedListeners[key]
	s.typedListeners[key] = listener
	s.mux.Unlock()
	if ok {
		previous.(*Listener[T]).Stop()
	}
	listener.Start(ctx)
}

// PublisherOf returns the publisher for events carrying T
func PublisherOf[T any](s *Service) *Publisher[T] {
	key := keyOf[T]()
	s.mux.RLock()
	ret, ok := s.typedPublishers[key]
	s.mux.RUnlock()
	if ok {
		return ret.(*Publisher[T])
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if ret, ok = s.typedPublishers[key]; ok {
		return ret.(*Publisher[T])
	}
	publisher := NewPublisher[T](memory.NewQueue[Event[T]](s.config))
	publisher.anyQueue = s.publisher.queue
	s.typedPublishers[key] = publisher
	return publisher
}
