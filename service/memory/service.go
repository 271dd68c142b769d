package memory

import (
	"fmt"
	"sync"
)

// free marks an unowned frame in the ownership array
const free = 0

// Config represents memory pool configuration
type Config struct {
	Frames    int `json:"frames" yaml:"frames"`
	FrameSize int `json:"frameSize" yaml:"frameSize"`
}

// DefaultConfig returns the default pool geometry
func DefaultConfig() Config {
	return Config{
		Frames:    32,
		FrameSize: 256,
	}
}

// Validate checks pool geometry
func (c Config) Validate() error {
	if c.Frames <= 0 {
		return fmt.Errorf("memory.frames must be > 0")
	}
	if c.FrameSize <= 0 {
		return fmt.Errorf("memory.frameSize must be > 0")
	}
	return nil
}

// Status is a consistent snapshot of pool usage
type Status struct {
	FramesTotal int `json:"framesTotal"`
	FramesUsed  int `json:"framesUsed"`
	FramesFree  int `json:"framesFree"`
	FrameSize   int `json:"frameSize"`
}

// Service manages the frame pool. Frame content lives in one contiguous
// arena; owners is a parallel array indexed by frame number.
type Service struct {
	config Config
	arena  []byte
	owners []int
	used   int
	mux    sync.Mutex
}

// New creates a memory manager with every frame free
func New(config Config) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		config: config,
		arena:  make([]byte, config.Frames*config.FrameSize),
		owners: make([]int, config.Frames),
	}, nil
}

// Config returns pool geometry
func (s *Service) Config() Config {
	return s.config
}

// Status returns pool usage
func (s *Service) Status() Status {
	s.mux.Lock()
	defer s.mux.Unlock()
	return Status{
		FramesTotal: s.config.Frames,
		FramesUsed:  s.used,
		FramesFree:  s.config.Frames - s.used,
		FrameSize:   s.config.FrameSize,
	}
}

// Allocate grants count free frames to pid, lowest index first. The request
// either succeeds entirely or leaves the pool untouched.
func (s *Service) Allocate(pid int, count int) ([]int, error) {
	if pid < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if available := s.config.Frames - s.used; available < count {
		return nil, fmt.Errorf("%w: requested %d, free %d", ErrOutOfMemory, count, available)
	}
	granted := make([]int, 0, count)
	for i := 0; i < len(s.owners) && len(granted) < count; i++ {
		if s.owners[i] != free {
			continue
		}
		s.owners[i] = pid
		s.zero(i)
		granted = append(granted, i)
	}
	s.used += len(granted)
	return granted, nil
}

// Free releases every frame owned by pid and returns how many were released.
// Freeing a pid without frames is a no-op.
func (s *Service) Free(pid int) int {
	if pid < 1 {
		return 0
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	released := 0
	for i, owner := range s.owners {
		if owner != pid {
			continue
		}
		s.owners[i] = free
		s.zero(i)
		released++
	}
	s.used -= released
	return released
}

// Write copies data into frame at offset
func (s *Service) Write(frame, offset int, data []byte) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	start, err := s.bounds(frame, offset, len(data))
	if err != nil {
		return err
	}
	copy(s.arena[start:start+len(data)], data)
	return nil
}

// Read returns a copy of size bytes of frame starting at offset
func (s *Service) Read(frame, offset, size int) ([]byte, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	start, err := s.bounds(frame, offset, size)
	if err != nil {
		return nil, err
	}
	ret := make([]byte, size)
	copy(ret, s.arena[start:start+size])
	return ret, nil
}

// Owner returns the pid owning frame; ok is false for free or unknown frames
func (s *Service) Owner(frame int) (int, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if frame < 0 || frame >= len(s.owners) || s.owners[frame] == free {
		return 0, false
	}
	return s.owners[frame], true
}

// Frames returns frames currently owned by pid in index order
func (s *Service) Frames(pid int) []int {
	s.mux.Lock()
	defer s.mux.Unlock()
	var ret []int
	for i, owner := range s.owners {
		if owner == pid && pid != free {
			ret = append(ret, i)
		}
	}
	return ret
}

// Owners returns a snapshot of the ownership array, 0 meaning free
func (s *Service) Owners() []int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]int(nil), s.owners...)
}

// bounds validates the range and returns its arena offset. Caller holds mux.
func (s *Service) bounds(frame, offset, size int) (int, error) {
	if frame < 0 || frame >= s.config.Frames {
		return 0, fmt.Errorf("%w: %d", ErrUnknownFrame, frame)
	}
	if offset < 0 || size < 0 || offset+size > s.config.FrameSize {
		return 0, fmt.Errorf("%w: frame %d offset %d size %d", ErrOutOfBounds, frame, offset, size)
	}
	return frame*s.config.FrameSize + offset, nil
}

func (s *Service) zero(frame int) {
	start := frame * s.config.FrameSize
	clear(s.arena[start : start+s.config.FrameSize])
}
