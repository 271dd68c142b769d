package process

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viant/ossim/internal/clock"
)

// FramesKey is the metadata key holding the frame indices granted to a process
const FramesKey = "frames"

// Process represents a simulated process: a named instruction sequence with a
// program counter and lifecycle state.
type Process struct {
	PID        int                    `json:"pid"`
	Name       string                 `json:"name"`
	State      State                  `json:"state"`
	PC         int                    `json:"pc"`
	CPUTime    time.Duration          `json:"cpuTime"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Error      string                 `json:"error,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
	FinishedAt *time.Time             `json:"finishedAt,omitempty"`

	instructions []Instruction
	mu           sync.RWMutex // Protects concurrent access
}

// Status is a point in time view of a process
type Status struct {
	PID          int           `json:"pid"`
	Name         string        `json:"name"`
	State        State         `json:"state"`
	PC           int           `json:"pc"`
	Instructions int           `json:"instructions"`
	CPUTime      time.Duration `json:"cpuTime"`
	Frames       []int         `json:"frames,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// New creates a ready process
func New(pid int, name string, instructions ...Instruction) *Process {
	now := clock.Now()
	return &Process{
		PID:          pid,
		Name:         name,
		State:        StateReady,
		Metadata:     make(map[string]interface{}),
		CreatedAt:    now,
		UpdatedAt:    now,
		instructions: instructions,
	}
}

// Len returns the number of instructions
func (p *Process) Len() int {
	return len(p.instructions)
}

// Step executes the instruction at the program counter. On success the
// program counter advances. A failing instruction terminates the process and
// is reported as *Fault.
func (p *Process) Step(ctx context.Context) error {
	p.mu.RLock()
	pc := p.PC
	done := p.State.IsTerminated() || pc >= len(p.instructions)
	var instruction Instruction
	if !done {
		instruction = p.instructions[pc]
	}
	p.mu.RUnlock()
	if done {
		return ErrFinished
	}

	if err := invoke(ctx, instruction, p); err != nil {
		fault := &Fault{PID: p.PID, PC: pc, Err: err}
		p.fail(fault)
		return fault
	}

	p.mu.Lock()
	p.PC++
	p.UpdatedAt = clock.Now()
	p.mu.Unlock()
	return nil
}

func (p *Process) fail(fault *Fault) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Error = fault.Err.Error()
	p.setState(StateTerminated)
}

// IsFinished reports whether there is nothing left to run
func (p *Process) IsFinished() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.PC >= len(p.instructions) || p.State.IsTerminated()
}

// GetState returns the process state
func (p *Process) GetState() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.State
}

// SetState updates the process state
func (p *Process) SetState(state State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setState(state)
}

func (p *Process) setState(state State) {
	now := clock.Now()
	p.State = state
	if state.IsTerminated() && p.FinishedAt == nil {
		p.FinishedAt = &now
	}
	p.UpdatedAt = now
}

// GetPC returns the program counter
func (p *Process) GetPC() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.PC
}

// AddCPUTime accumulates consumed (simulated) time
func (p *Process) AddCPUTime(d time.Duration) {
	p.mu.Lock()
	p.CPUTime += d
	p.mu.Unlock()
}

// Frames returns a copy of the frame indices cached in metadata
func (p *Process) Frames() []int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	frames, _ := p.Metadata[FramesKey].([]int)
	if len(frames) == 0 {
		return nil
	}
	return append([]int(nil), frames...)
}

// SetFrames caches granted frame indices in metadata
func (p *Process) SetFrames(frames []int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(frames) == 0 {
		delete(p.Metadata, FramesKey)
		return
	}
	p.Metadata[FramesKey] = append([]int(nil), frames...)
}

// Frame returns the index-th frame granted to the process
func (p *Process) Frame(index int) (int, error) {
	frames := p.Frames()
	if index < 0 || index >= len(frames) {
		return 0, errors.New("process has no such frame")
	}
	return frames[index], nil
}

// Get returns a metadata value
func (p *Process) Get(key string) (interface{}, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.Metadata[key]
	return v, ok
}

// Set stores a metadata value
func (p *Process) Set(key string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Metadata[key] = value
}

// Status returns a consistent snapshot of the process
func (p *Process) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ret := Status{
		PID:          p.PID,
		Name:         p.Name,
		State:        p.State,
		PC:           p.PC,
		Instructions: len(p.instructions),
		CPUTime:      p.CPUTime,
		Error:        p.Error,
	}
	if frames, _ := p.Metadata[FramesKey].([]int); len(frames) > 0 {
		ret.Frames = append([]int(nil), frames...)
	}
	return ret
}

// Clone creates a copy suitable for reads outside the registry. Instructions
// are shared since they are never mutated after creation.
func (p *Process) Clone() *Process {
	if p == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := &Process{
		PID:          p.PID,
		Name:         p.Name,
		State:        p.State,
		PC:           p.PC,
		CPUTime:      p.CPUTime,
		Error:        p.Error,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		FinishedAt:   p.FinishedAt,
		instructions: p.instructions,
		Metadata:     make(map[string]interface{}, len(p.Metadata)),
	}
	for k, v := range p.Metadata {
		if frames, ok := v.([]int); ok {
			v = append([]int(nil), frames...)
		}
		out.Metadata[k] = v
	}
	return out
}
