package scheduler

import "errors"

var (
	// ErrUnknownProcess is returned when a pid is not registered
	ErrUnknownProcess = errors.New("scheduler: unknown process")

	// ErrStopped is returned by Start once the scheduler was shut down
	ErrStopped = errors.New("scheduler: stopped")
)
