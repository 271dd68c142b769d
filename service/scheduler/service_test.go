package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/event"
	"github.com/viant/ossim/service/memory"
)

type recorder struct {
	trace []int
	mux   sync.Mutex
}

func (r *recorder) instructions(n int) []process.Instruction {
	ret := make([]process.Instruction, n)
	for i := range ret {
		ret[i] = process.InstructionFunc(func(ctx context.Context, p *process.Process) error {
			r.mux.Lock()
			r.trace = append(r.trace, p.PID)
			r.mux.Unlock()
			return nil
		})
	}
	return ret
}

func (r *recorder) reset() []int {
	r.mux.Lock()
	defer r.mux.Unlock()
	ret := r.trace
	r.trace = nil
	return ret
}

func newScheduler(t *testing.T, frames int, options ...Option) (*Service, *memory.Service) {
	mem, err := memory.New(memory.Config{Frames: frames, FrameSize: 16})
	require.NoError(t, err)
	options = append([]Option{
		WithMemory(mem),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, options...)
	srv, err := New(options...)
	require.NoError(t, err)
	return srv, mem
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		config      Config
		expectErr   bool
	}{
		{description: "default", config: DefaultConfig()},
		{description: "zero quantum", config: Config{Quantum: 0}, expectErr: true},
		{description: "negative frames", config: Config{Quantum: 1, FramesPerProcess: -1}, expectErr: true},
		{description: "negative interval", config: Config{Quantum: 1, Interval: -time.Second}, expectErr: true},
		{description: "no frames requested", config: Config{Quantum: 3}},
	}
	for _, testCase := range testCases {
		err := testCase.config.Validate()
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}

	_, err := New()
	assert.Error(t, err, "memory is required")
}

func TestService_CreateProcess(t *testing.T) {
	ctx := context.Background()
	srv, mem := newScheduler(t, 8)
	rec := &recorder{}

	first, err := srv.CreateProcess(ctx, "p1", rec.instructions(3)...)
	require.NoError(t, err)
	second, err := srv.CreateProcess(ctx, "p2", rec.instructions(1)...)
	require.NoError(t, err)

	assert.Equal(t, 1, first.PID)
	assert.Equal(t, 2, second.PID)
	assert.Equal(t, process.StateReady, first.GetState())
	assert.Equal(t, 0, first.GetPC())
	assert.Equal(t, []int{0, 1, 2, 3}, first.Frames())
	assert.Equal(t, []int{4, 5, 6, 7}, second.Frames())
	assert.Equal(t, []int{1, 2}, srv.Queue())
	assert.Equal(t, 8, mem.Status().FramesUsed)

	statuses, err := srv.ListProcesses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "p1", statuses[0].Name)
	assert.Equal(t, 3, statuses[0].Instructions)
	assert.Equal(t, "p2", statuses[1].Name)

	found, err := srv.Lookup(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "p2", found.Name)
	_, err = srv.Lookup(ctx, 42)
	assert.ErrorIs(t, err, ErrUnknownProcess)
	assert.Equal(t, 2, srv.Progress().Snapshot().Created)
}

func TestService_CreateProcessOutOfMemory(t *testing.T) {
	ctx := context.Background()
	events := event.New()
	defer events.Close()
	publisher := event.PublisherOf[process.Status](events)
	srv, mem := newScheduler(t, 6, WithPublisher(publisher))

	first, err := srv.CreateProcess(ctx, "fits")
	require.NoError(t, err)
	second, err := srv.CreateProcess(ctx, "starved")
	require.NoError(t, err, "creation is never rolled back")

	assert.Len(t, first.Frames(), 4)
	assert.Nil(t, second.Frames())
	assert.Equal(t, []int{1, 2}, srv.Queue())
	assert.Equal(t, memory.Status{FramesTotal: 6, FramesUsed: 4, FramesFree: 2, FrameSize: 16}, mem.Status())

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	var types []string
	for i := 0; i < 3; i++ {
		anEvent, err := publisher.Consume(ctx)
		require.NoError(t, err)
		types = append(types, anEvent.Type())
		if anEvent.Type() == process.EventOutOfMemory {
			assert.Equal(t, 2, anEvent.Context.PID)
			assert.NotEmpty(t, anEvent.Context.Message)
		}
	}
	assert.Equal(t, []string{process.EventCreated, process.EventCreated, process.EventOutOfMemory}, types)
}

func TestService_ScheduleRoundRobin(t *testing.T) {
	ctx := context.Background()
	srv, _ := newScheduler(t, 32, WithQuantum(2))
	rec := &recorder{}
	for _, name := range []string{"a", "b", "c"} {
		_, err := srv.CreateProcess(ctx, name, rec.instructions(6)...)
		require.NoError(t, err)
	}

	testCases := []struct {
		description string
		expectTrace []int
		expectQueue []int
	}{
		{description: "first round", expectTrace: []int{1, 1}, expectQueue: []int{2, 3, 1}},
		{description: "second round", expectTrace: []int{2, 2}, expectQueue: []int{3, 1, 2}},
		{description: "third round", expectTrace: []int{3, 3}, expectQueue: []int{1, 2, 3}},
		{description: "fourth round", expectTrace: []int{1, 1}, expectQueue: []int{2, 3, 1}},
	}
	for _, testCase := range testCases {
		assert.True(t, srv.Schedule(ctx), testCase.description)
		assert.Equal(t, testCase.expectTrace, rec.reset(), testCase.description)
		assert.Equal(t, testCase.expectQueue, srv.Queue(), testCase.description)
	}

	statuses, err := srv.ListProcesses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, statuses[0].PC)
	assert.Equal(t, 2, statuses[1].PC)
	assert.Equal(t, 2, statuses[2].PC)
	for _, status := range statuses {
		assert.Equal(t, process.StateReady, status.State)
	}
	snapshot := srv.Progress().Snapshot()
	assert.Equal(t, 4, snapshot.Rounds)
	assert.Equal(t, 4, snapshot.Preemptions)
	assert.Equal(t, 8, snapshot.Instructions)
}

func TestService_ScheduleToCompletion(t *testing.T) {
	ctx := context.Background()
	srv, mem := newScheduler(t, 8, WithQuantum(2))
	rec := &recorder{}
	aProcess, err := srv.CreateProcess(ctx, "ten", rec.instructions(10)...)
	require.NoError(t, err)

	for round := 1; round <= 4; round++ {
		require.True(t, srv.Schedule(ctx))
		assert.Equal(t, process.StateReady, aProcess.GetState())
		assert.Equal(t, 2*round, aProcess.GetPC())
	}
	require.True(t, srv.Schedule(ctx))
	assert.Equal(t, process.StateTerminated, aProcess.GetState())
	assert.Equal(t, 10, aProcess.GetPC())
	assert.Equal(t, 100*time.Millisecond, aProcess.Status().CPUTime)
	assert.Empty(t, srv.Queue())
	assert.Equal(t, 0, mem.Status().FramesUsed)
	assert.Nil(t, aProcess.Frames())

	assert.False(t, srv.Schedule(ctx), "empty queue round is a no-op")
	snapshot := srv.Progress().Snapshot()
	assert.Equal(t, 1, snapshot.Terminated)
	assert.Equal(t, 0, snapshot.Active())
}

func TestService_ScheduleShortProcess(t *testing.T) {
	ctx := context.Background()
	srv, _ := newScheduler(t, 8, WithQuantum(4))
	rec := &recorder{}
	short, err := srv.CreateProcess(ctx, "short", rec.instructions(1)...)
	require.NoError(t, err)
	empty, err := srv.CreateProcess(ctx, "empty")
	require.NoError(t, err)

	require.True(t, srv.Schedule(ctx))
	require.True(t, srv.Schedule(ctx))
	assert.Equal(t, []int{1}, rec.reset())
	assert.Equal(t, process.StateTerminated, short.GetState())
	assert.Equal(t, process.StateTerminated, empty.GetState())
	assert.Equal(t, 0, empty.GetPC())
}

func TestService_TerminateProcess(t *testing.T) {
	ctx := context.Background()
	srv, mem := newScheduler(t, 16)
	rec := &recorder{}
	for _, name := range []string{"a", "b", "c"} {
		_, err := srv.CreateProcess(ctx, name, rec.instructions(4)...)
		require.NoError(t, err)
	}
	require.Equal(t, 12, mem.Status().FramesUsed)

	testCases := []struct {
		description string
		pid         int
		expectFound bool
		expectQueue []int
		expectUsed  int
	}{
		{description: "middle of queue", pid: 2, expectFound: true, expectQueue: []int{1, 3}, expectUsed: 8},
		{description: "unknown pid", pid: 99, expectFound: false, expectQueue: []int{1, 3}, expectUsed: 8},
		{description: "invalid pid", pid: 0, expectFound: false, expectQueue: []int{1, 3}, expectUsed: 8},
		{description: "already terminated", pid: 2, expectFound: true, expectQueue: []int{1, 3}, expectUsed: 8},
		{description: "head of queue", pid: 1, expectFound: true, expectQueue: []int{3}, expectUsed: 4},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expectFound, srv.TerminateProcess(ctx, testCase.pid), testCase.description)
		assert.Equal(t, testCase.expectQueue, srv.Queue(), testCase.description)
		assert.Equal(t, testCase.expectUsed, mem.Status().FramesUsed, testCase.description)
	}

	assert.Empty(t, mem.Frames(1))
	assert.Empty(t, mem.Frames(2))
	statuses, err := srv.ListProcesses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 3, "terminated processes stay registered")
	assert.Equal(t, process.StateTerminated, statuses[0].State)
	assert.Equal(t, process.StateTerminated, statuses[1].State)
	assert.Equal(t, process.StateReady, statuses[2].State)

	ready, err := srv.ListProcesses(ctx, process.StateReady, process.StateRunning)
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Equal(t, 3, ready[0].PID)

	require.True(t, srv.Schedule(ctx))
	assert.Equal(t, []int{3, 3}, rec.reset(), "terminated processes are never scheduled")
	snapshot := srv.Progress().Snapshot()
	assert.Equal(t, 2, snapshot.Killed)
	assert.Equal(t, 2, snapshot.Terminated)
}

func TestService_TerminateDuringQuantum(t *testing.T) {
	ctx := context.Background()
	srv, mem := newScheduler(t, 8, WithQuantum(3))
	executed := 0
	count := process.InstructionFunc(func(ctx context.Context, p *process.Process) error {
		executed++
		return nil
	})
	kill := process.InstructionFunc(func(ctx context.Context, p *process.Process) error {
		assert.True(t, srv.TerminateProcess(ctx, p.PID))
		return nil
	})
	aProcess, err := srv.CreateProcess(ctx, "victim", count, kill, count, count)
	require.NoError(t, err)

	require.True(t, srv.Schedule(ctx))
	assert.Equal(t, 1, executed, "no instruction runs after termination")
	assert.Equal(t, 2, aProcess.GetPC())
	assert.Equal(t, process.StateTerminated, aProcess.GetState())
	assert.Empty(t, srv.Queue())
	assert.Equal(t, 0, mem.Status().FramesUsed)

	snapshot := srv.Progress().Snapshot()
	assert.Equal(t, 1, snapshot.Killed)
	assert.Equal(t, 1, snapshot.Terminated)
}

func TestService_FaultIsolation(t *testing.T) {
	ctx := context.Background()
	srv, mem := newScheduler(t, 8, WithQuantum(2))
	rec := &recorder{}
	boom := errors.New("division by zero")
	faulty := append(rec.instructions(1),
		process.InstructionFunc(func(ctx context.Context, p *process.Process) error { return boom }),
		process.InstructionFunc(func(ctx context.Context, p *process.Process) error { panic("unreachable") }),
	)
	panicky := []process.Instruction{
		process.InstructionFunc(func(ctx context.Context, p *process.Process) error {
			var frames []int
			_ = frames[3]
			return nil
		}),
	}
	bad, err := srv.CreateProcess(ctx, "bad", faulty...)
	require.NoError(t, err)
	worse, err := srv.CreateProcess(ctx, "worse", panicky...)
	require.NoError(t, err)
	good, err := srv.CreateProcess(ctx, "good", rec.instructions(4)...)
	require.NoError(t, err)
	require.Equal(t, 8, mem.Status().FramesUsed)

	for srv.Schedule(ctx) {
	}

	assert.Equal(t, process.StateTerminated, bad.GetState())
	assert.Equal(t, 1, bad.GetPC())
	assert.Equal(t, boom.Error(), bad.Status().Error)
	assert.Equal(t, process.StateTerminated, worse.GetState())
	assert.Contains(t, worse.Status().Error, "panic")
	assert.Equal(t, process.StateTerminated, good.GetState())
	assert.Equal(t, 4, good.GetPC())
	assert.Equal(t, []int{1, 3, 3, 3, 3}, rec.reset())
	assert.Equal(t, 0, mem.Status().FramesUsed)

	snapshot := srv.Progress().Snapshot()
	assert.Equal(t, 2, snapshot.Faulted)
	assert.Equal(t, 3, snapshot.Terminated)
}

func TestService_StartShutdown(t *testing.T) {
	ctx := context.Background()
	srv, mem := newScheduler(t, 32, WithConfig(Config{Quantum: 2, Interval: time.Millisecond, FramesPerProcess: 2}))
	srv.Shutdown()

	srv, mem = newScheduler(t, 32, WithConfig(Config{Quantum: 2, Interval: time.Millisecond, FramesPerProcess: 2}))
	require.NoError(t, srv.Start(ctx))
	require.NoError(t, srv.Start(ctx))

	rec := &recorder{}
	var processes []*process.Process
	for _, name := range []string{"a", "b", "c", "d"} {
		aProcess, err := srv.CreateProcess(ctx, name, rec.instructions(5)...)
		require.NoError(t, err)
		processes = append(processes, aProcess)
	}

	assert.Eventually(t, func() bool {
		for _, aProcess := range processes {
			if !aProcess.GetState().IsTerminated() {
				return false
			}
		}
		return true
	}, 5*time.Second, 5*time.Millisecond)

	srv.Shutdown()
	srv.Shutdown()
	assert.ErrorIs(t, srv.Start(ctx), ErrStopped)
	assert.Len(t, rec.reset(), 20)
	assert.Equal(t, 0, mem.Status().FramesUsed)
}

func TestService_StartContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv, _ := newScheduler(t, 4, WithConfig(Config{Quantum: 1, Interval: time.Millisecond}))
	require.NoError(t, srv.Start(ctx))
	cancel()

	done := make(chan struct{})
	go func() {
		srv.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler loop did not exit")
	}
}
