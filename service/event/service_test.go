package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/ossim/service/messaging"
	"github.com/viant/ossim/service/messaging/memory"
)

type fault struct {
	Message string
}

func TestService_TypedListener(t *testing.T) {
	ctx := context.Background()
	srv := New()
	defer srv.Close()

	received := make(chan *Event[fault], 1)
	SetListenerOf[fault](ctx, srv, func(e *Event[fault]) { received <- e })

	publisher := PublisherOf[fault](srv)
	assert.Same(t, publisher, PublisherOf[fault](srv))
	anEvent := NewEvent(&Context{PID: 3, Name: "p3", EventType: "faulted"}, fault{Message: "boom"})
	require.NoError(t, publisher.Publish(ctx, anEvent))

	select {
	case e := <-received:
		assert.Equal(t, "faulted", e.Type())
		assert.Equal(t, 3, e.Context.PID)
		assert.Equal(t, "boom", e.Data.Message)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestService_UntypedMirror(t *testing.T) {
	ctx := context.Background()
	srv := New()
	defer srv.Close()

	received := make(chan *Event[any], 1)
	srv.SetListener(ctx, func(e *Event[any]) { received <- e })

	require.NoError(t, PublisherOf[int](srv).Publish(ctx, NewEvent(&Context{EventType: "created"}, 42)))
	select {
	case e := <-received:
		assert.Equal(t, "created", e.Type())
		assert.Equal(t, 42, e.Data)
	case <-time.After(time.Second):
		t.Fatal("event not mirrored")
	}
}

func TestListener_Stop(t *testing.T) {
	srv := New()
	listener := NewListener[int](PublisherOf[int](srv), func(*Event[int]) {})
	listener.Stop()
	listener.Start(context.Background())
	done := make(chan struct{})
	go func() {
		listener.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestPublisher_Dropped(t *testing.T) {
	ctx := context.Background()
	config := memory.DefaultConfig()
	config.QueueBuffer = 1
	config.DropWhenFull = true
	srv := New(WithQueueConfig(config))
	defer srv.Close()

	publisher := PublisherOf[int](srv)
	require.NoError(t, publisher.Publish(ctx, NewEvent(&Context{EventType: "created"}, 1)))
	assert.Equal(t, int64(0), publisher.Dropped())

	err := publisher.Publish(ctx, NewEvent(&Context{EventType: "created"}, 2))
	assert.ErrorIs(t, err, messaging.ErrQueueFull)
	assert.Equal(t, int64(2), publisher.Dropped(), "typed and mirrored copies")
}
