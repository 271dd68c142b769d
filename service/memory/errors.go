package memory

import "errors"

var (
	// ErrOutOfMemory is returned when an allocation asks for more frames than
	// are free. No frame is granted in that case.
	ErrOutOfMemory = errors.New("memory: out of memory")

	// ErrUnknownFrame indicates a frame index outside the pool.
	ErrUnknownFrame = errors.New("memory: unknown frame")

	// ErrOutOfBounds indicates a byte range that does not fit in a frame.
	ErrOutOfBounds = errors.New("memory: out of bounds")

	// ErrInvalidCount is returned for negative allocation counts.
	ErrInvalidCount = errors.New("memory: invalid frame count")

	// ErrInvalidPID is returned for owners below 1.
	ErrInvalidPID = errors.New("memory: invalid pid")
)
