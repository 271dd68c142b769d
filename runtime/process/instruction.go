package process

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrFinished is returned by Step when no instruction is left to run or
	// the process was terminated.
	ErrFinished = errors.New("process: finished")

	errNilInstruction = errors.New("nil instruction")
)

// Instruction is a single executable step of a program. It runs with the
// owning process as context; a returned error is fatal for that process.
type Instruction interface {
	Execute(ctx context.Context, p *Process) error
}

// InstructionFunc adapts a function to Instruction
type InstructionFunc func(ctx context.Context, p *Process) error

// Execute calls f(ctx, p)
func (f InstructionFunc) Execute(ctx context.Context, p *Process) error {
	return f(ctx, p)
}

// Fault describes an instruction that failed and terminated its process
type Fault struct {
	PID int
	PC  int
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("process %d: instruction %d: %v", f.PID, f.PC, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// invoke runs the instruction converting a panic into an error.
func invoke(ctx context.Context, instruction Instruction, p *Process) (err error) {
	if instruction == nil {
		return errNilInstruction
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return instruction.Execute(ctx, p)
}
