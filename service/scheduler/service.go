package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/viant/ossim/internal/idgen"
	"github.com/viant/ossim/progress"
	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/dao"
	daoprocess "github.com/viant/ossim/service/dao/process/memory"
	"github.com/viant/ossim/service/event"
	"github.com/viant/ossim/tracing"
)

// killedKey marks processes terminated by TerminateProcess
const killedKey = "killed"

// Memory is the frame allocator consumed by the scheduler
type Memory interface {
	Allocate(pid int, count int) ([]int, error)
	Free(pid int) int
}

// Service is a round-robin scheduler
type Service struct {
	config     Config
	memory     Memory
	processDAO dao.Service[int, process.Process]
	publisher  *event.Publisher[process.Status]
	progress   *progress.Progress
	logger     *slog.Logger
	pids       *idgen.Sequence

	// ready queue, head first
	queue []*process.Process
	mux   sync.Mutex

	started    bool
	stopped    bool
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// New creates a scheduler. A memory allocator is required.
func New(options ...Option) (*Service, error) {
	s := &Service{
		config:     DefaultConfig(),
		pids:       idgen.NewSequence(1),
		shutdownCh: make(chan struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.memory == nil {
		return nil, fmt.Errorf("memory is required")
	}
	if s.processDAO == nil {
		s.processDAO = daoprocess.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.progress == nil {
		s.progress = progress.New()
	}
	s.logger = s.logger.With("module", "scheduler")
	return s, nil
}

// Config returns the scheduler configuration
func (s *Service) Config() Config {
	return s.config
}

// Progress returns the statistics tracker
func (s *Service) Progress() *progress.Progress {
	return s.progress
}

// CreateProcess registers a ready process at the tail of the queue and
// requests its frames. Running out of frames does not undo the creation: the
// process keeps running without frames.
func (s *Service) CreateProcess(ctx context.Context, name string, instructions ...process.Instruction) (aProcess *process.Process, err error) {
	ctx, span := tracing.StartSpan(ctx, "scheduler.CreateProcess", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	aProcess = process.New(s.pids.Next(), name, instructions...)
	span.WithAttributes(map[string]string{"process.name": name}).WithInt("process.pid", aProcess.PID)

	s.mux.Lock()
	if err = s.processDAO.Save(ctx, aProcess); err != nil {
		s.mux.Unlock()
		return nil, fmt.Errorf("failed to register process %v: %w", name, err)
	}
	s.queue = append(s.queue, aProcess)
	s.mux.Unlock()

	s.progress.Update(progress.Delta{Created: 1})
	s.logger.Debug("process created", "pid", aProcess.PID, "name", name, "instructions", aProcess.Len())
	s.publish(ctx, aProcess, process.EventCreated, "")

	frames, allocErr := s.memory.Allocate(aProcess.PID, s.config.FramesPerProcess)
	if allocErr != nil {
		s.logger.Warn("frame allocation failed", "pid", aProcess.PID, "name", name, "frames", s.config.FramesPerProcess, "error", allocErr)
		s.publish(ctx, aProcess, process.EventOutOfMemory, allocErr.Error())
		return aProcess, nil
	}
	aProcess.SetFrames(frames)
	// the process may have finished before its frames were granted
	if aProcess.GetState().IsTerminated() {
		s.memory.Free(aProcess.PID)
		aProcess.SetFrames(nil)
	}
	return aProcess, nil
}

// ListProcesses returns registered processes in pid order, optionally only
// those in one of states
func (s *Service) ListProcesses(ctx context.Context, states ...process.State) ([]process.Status, error) {
	var parameters []*dao.Parameter
	if len(states) > 0 {
		names := make([]string, len(states))
		for i, state := range states {
			names[i] = string(state)
		}
		parameters = append(parameters, dao.NewParameter(dao.StateParameter, names...))
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	processes, err := s.processDAO.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	ret := make([]process.Status, 0, len(processes))
	for _, p := range processes {
		ret = append(ret, p.Status())
	}
	return ret, nil
}

// Lookup returns a copy of the process identified by pid
func (s *Service) Lookup(ctx context.Context, pid int) (*process.Process, error) {
	aProcess, err := s.processDAO.Load(ctx, pid)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) || errors.Is(err, dao.ErrInvalidID) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownProcess, pid)
		}
		return nil, err
	}
	return aProcess.Clone(), nil
}

// Queue returns pids of ready processes, head first
func (s *Service) Queue() []int {
	s.mux.Lock()
	defer s.mux.Unlock()
	ret := make([]int, 0, len(s.queue))
	for _, p := range s.queue {
		ret = append(ret, p.PID)
	}
	return ret
}

// TerminateProcess marks pid terminated, drops it from the ready queue and
// frees its frames. It returns false for an unknown pid. A quantum already in
// progress stops before its next instruction.
func (s *Service) TerminateProcess(ctx context.Context, pid int) (found bool) {
	ctx, span := tracing.StartSpan(ctx, "scheduler.TerminateProcess", tracing.KindInternal)
	span.WithInt("process.pid", pid)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	s.mux.Lock()
	aProcess, err := s.processDAO.Load(ctx, pid)
	if err != nil {
		s.mux.Unlock()
		s.logger.Info("terminate: unknown process", "pid", pid)
		err = fmt.Errorf("%w: %d", ErrUnknownProcess, pid)
		return false
	}
	killed := !aProcess.GetState().IsTerminated()
	if killed {
		aProcess.Set(killedKey, true)
	}
	aProcess.SetState(process.StateTerminated)
	s.remove(pid)
	s.mux.Unlock()

	released := s.memory.Free(pid)
	aProcess.SetFrames(nil)
	if killed {
		s.progress.Update(progress.Delta{Terminated: 1, Killed: 1})
		s.logger.Info("process killed", "pid", pid, "name", aProcess.Name, "frames", released)
		s.publish(ctx, aProcess, process.EventKilled, "")
	}
	return true
}

// remove drops pid from the ready queue. Caller holds mux.
func (s *Service) remove(pid int) {
	for i, p := range s.queue {
		if p.PID == pid {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Schedule runs one scheduling round and reports whether a process was
// granted a quantum.
func (s *Service) Schedule(ctx context.Context) bool {
	s.mux.Lock()
	if len(s.queue) == 0 {
		s.mux.Unlock()
		return false
	}
	current := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	if current.GetState().IsTerminated() {
		s.mux.Unlock()
		return false
	}
	current.SetState(process.StateRunning)
	s.mux.Unlock()

	s.runQuantum(ctx, current)

	s.mux.Lock()
	finished := current.IsFinished()
	if finished {
		current.SetState(process.StateTerminated)
	} else {
		current.SetState(process.StateReady)
		s.queue = append(s.queue, current)
	}
	s.mux.Unlock()

	if !finished {
		s.progress.Update(progress.Delta{Rounds: 1, Preemptions: 1})
		s.publish(ctx, current, process.EventPreempted, "")
		return true
	}
	s.progress.Update(progress.Delta{Rounds: 1})
	s.retire(ctx, current)
	return true
}

func (s *Service) runQuantum(ctx context.Context, aProcess *process.Process) {
	var err error
	ctx, span := tracing.StartSpan(ctx, "scheduler.quantum", tracing.KindInternal)
	span.WithAttributes(map[string]string{"process.name": aProcess.Name}).WithInt("process.pid", aProcess.PID)
	defer func() { tracing.EndSpan(span, err) }()

	s.publish(ctx, aProcess, process.EventScheduled, "")
	executed := 0
	for executed < s.config.Quantum && !aProcess.IsFinished() {
		err = aProcess.Step(ctx)
		if errors.Is(err, process.ErrFinished) {
			err = nil
			break
		}
		executed++
		aProcess.AddCPUTime(s.config.InstructionCost)
		var fault *process.Fault
		if errors.As(err, &fault) {
			s.logger.Error("instruction fault", "pid", fault.PID, "pc", fault.PC, "name", aProcess.Name, "error", fault.Err)
			s.progress.Update(progress.Delta{Instructions: 1, Faulted: 1})
			s.publish(ctx, aProcess, process.EventFaulted, fault.Err.Error())
			break
		}
		s.progress.Update(progress.Delta{Instructions: 1})
	}
	span.WithInt("quantum.executed", executed)
}

// retire releases the frames of a process that left the scheduler on its own.
// A killed process was already accounted for by TerminateProcess.
func (s *Service) retire(ctx context.Context, aProcess *process.Process) {
	if _, killed := aProcess.Get(killedKey); killed {
		return
	}
	released := s.memory.Free(aProcess.PID)
	aProcess.SetFrames(nil)
	s.progress.Update(progress.Delta{Terminated: 1})
	s.logger.Debug("process terminated", "pid", aProcess.PID, "name", aProcess.Name, "pc", aProcess.GetPC(), "frames", released)
	s.publish(ctx, aProcess, process.EventTerminated, "")
}

func (s *Service) publish(ctx context.Context, aProcess *process.Process, eventType, message string) {
	if s.publisher == nil {
		return
	}
	status := aProcess.Status()
	anEvent := event.NewEvent(&event.Context{PID: status.PID, Name: status.Name, EventType: eventType, Message: message}, status)
	if err := s.publisher.Publish(ctx, anEvent); err != nil {
		s.logger.Debug("event dropped", "pid", status.PID, "type", eventType, "error", err)
	}
}

// Start launches the background scheduling loop. Calling it again is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return nil
	}
	s.started = true
	s.wg.Add(1)
	go s.run(ctx)
	s.logger.Info("scheduler started", "quantum", s.config.Quantum, "interval", s.config.Interval.String())
	return nil
}

func (s *Service) run(ctx context.Context) {
	defer s.wg.Done()
	timer := time.NewTimer(s.config.Interval)
	defer timer.Stop()
	for {
		select {
		case <-s.shutdownCh:
			return
		case <-ctx.Done():
			return
		default:
		}
		s.Schedule(ctx)
		timer.Reset(s.config.Interval)
		select {
		case <-s.shutdownCh:
			return
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// Shutdown stops the loop and waits for the in-flight round to complete.
// It is safe to call before Start and more than once.
func (s *Service) Shutdown() {
	s.mux.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.shutdownCh)
	}
	s.mux.Unlock()
	s.wg.Wait()
}
