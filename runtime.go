package ossim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/ossim/extension"
	"github.com/viant/ossim/progress"
	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/disk"
	"github.com/viant/ossim/service/event"
	"github.com/viant/ossim/service/memory"
	"github.com/viant/ossim/service/program"
	"github.com/viant/ossim/service/scheduler"
)

// Runtime is the process facing surface of the simulator
type Runtime struct {
	scheduler *scheduler.Service
	memory    *memory.Service
	disk      *disk.Service
	actions   *extension.Actions
	programs  *program.Service
	events    *event.Service
	logger    *slog.Logger

	demo     []*program.Program
	seedOnce sync.Once
}

// CreateProcess registers a process running the supplied instructions
func (r *Runtime) CreateProcess(ctx context.Context, name string, instructions ...process.Instruction) (*process.Process, error) {
	return r.scheduler.CreateProcess(ctx, name, instructions...)
}

// RunProgram binds program steps to registered instructions and creates a
// process running them. Nothing is created when a step cannot be bound.
func (r *Runtime) RunProgram(ctx context.Context, aProgram *program.Program) (*process.Process, error) {
	if aProgram == nil {
		return nil, fmt.Errorf("program was nil")
	}
	if err := aProgram.Validate(); err != nil {
		return nil, err
	}
	instructions, err := aProgram.Build(r.actions)
	if err != nil {
		return nil, err
	}
	return r.scheduler.CreateProcess(ctx, aProgram.Name, instructions...)
}

// LoadProgram loads a program definition from location
func (r *Runtime) LoadProgram(ctx context.Context, location string) (*program.Program, error) {
	return r.programs.Load(ctx, location)
}

// ListProcesses returns processes ever created in pid order; states, when
// given, narrows the result
func (r *Runtime) ListProcesses(ctx context.Context, states ...process.State) ([]process.Status, error) {
	return r.scheduler.ListProcesses(ctx, states...)
}

// TerminateProcess kills pid; it returns false for an unknown pid
func (r *Runtime) TerminateProcess(ctx context.Context, pid int) bool {
	return r.scheduler.TerminateProcess(ctx, pid)
}

// Process returns a copy of the process identified by pid
func (r *Runtime) Process(ctx context.Context, pid int) (*process.Process, error) {
	return r.scheduler.Lookup(ctx, pid)
}

// Schedule runs a single scheduling round, see scheduler.Service.Schedule
func (r *Runtime) Schedule(ctx context.Context) bool {
	return r.scheduler.Schedule(ctx)
}

// Memory returns the frame manager
func (r *Runtime) Memory() *memory.Service {
	return r.memory
}

// Disk returns the virtual disk
func (r *Runtime) Disk() *disk.Service {
	return r.disk
}

// Stats returns a snapshot of the run statistics
func (r *Runtime) Stats() progress.Progress {
	return r.scheduler.Progress().Snapshot()
}

// Ops lists registered instruction ops
func (r *Runtime) Ops() []string {
	return r.actions.Ops()
}

// Start launches the scheduling loop and seeds demo programs, if any, the
// first time it is called.
func (r *Runtime) Start(ctx context.Context) error {
	if err := r.scheduler.Start(ctx); err != nil {
		return err
	}
	var err error
	r.seedOnce.Do(func() {
		for _, aProgram := range r.demo {
			var aProcess *process.Process
			if aProcess, err = r.RunProgram(ctx, aProgram); err != nil {
				err = fmt.Errorf("failed to seed %v: %w", aProgram.Name, err)
				return
			}
			r.logger.Info("demo process created", "pid", aProcess.PID, "name", aProcess.Name)
		}
	})
	return err
}

// Shutdown stops the scheduling loop and every event listener
func (r *Runtime) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.scheduler.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	r.events.Close()
	if dropped := event.PublisherOf[process.Status](r.events).Dropped(); dropped > 0 {
		r.logger.Info("lifecycle events dropped", "count", dropped)
	}
	return nil
}

// DemoPrograms returns the two greeting programs seeded by WithDemoProcesses
func DemoPrograms() []*program.Program {
	return []*program.Program{
		{Name: "p1", Instructions: []*program.Step{{Op: "printer.print", Args: map[string]interface{}{"message": "hola"}, Repeat: 4}}},
		{Name: "p2", Instructions: []*program.Step{{Op: "printer.print", Args: map[string]interface{}{"message": "mundo"}, Repeat: 3}}},
	}
}
