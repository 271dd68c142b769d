package scheduler

import (
	"fmt"
	"time"
)

// Config represents scheduler configuration
type Config struct {
	// Quantum is the maximum number of instructions run per turn
	Quantum int `json:"quantum" yaml:"quantum"`

	// Interval is the pause between scheduling rounds
	Interval time.Duration `json:"interval" yaml:"interval"`

	// FramesPerProcess is the number of frames requested at creation
	FramesPerProcess int `json:"framesPerProcess" yaml:"framesPerProcess"`

	// InstructionCost is the simulated CPU time charged per instruction
	InstructionCost time.Duration `json:"instructionCost" yaml:"instructionCost"`
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Quantum:          2,
		Interval:         10 * time.Millisecond,
		FramesPerProcess: 4,
		InstructionCost:  10 * time.Millisecond,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Quantum < 1 {
		return fmt.Errorf("scheduler.quantum must be >= 1, got %d", c.Quantum)
	}
	if c.Interval < 0 {
		return fmt.Errorf("scheduler.interval must not be negative")
	}
	if c.FramesPerProcess < 0 {
		return fmt.Errorf("scheduler.framesPerProcess must not be negative")
	}
	if c.InstructionCost < 0 {
		return fmt.Errorf("scheduler.instructionCost must not be negative")
	}
	return nil
}
