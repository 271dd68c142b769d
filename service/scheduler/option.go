package scheduler

import (
	"log/slog"

	"github.com/viant/ossim/progress"
	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/dao"
	"github.com/viant/ossim/service/event"
)

// Option configures the scheduler
type Option func(*Service)

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithQuantum sets how many instructions a process runs per turn
func WithQuantum(quantum int) Option {
	return func(s *Service) {
		s.config.Quantum = quantum
	}
}

// WithMemory sets the frame allocator
func WithMemory(memory Memory) Option {
	return func(s *Service) {
		s.memory = memory
	}
}

// WithProcessDAO sets the process registry
func WithProcessDAO(processDAO dao.Service[int, process.Process]) Option {
	return func(s *Service) {
		s.processDAO = processDAO
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithPublisher sets the lifecycle event publisher
func WithPublisher(publisher *event.Publisher[process.Status]) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithProgress sets the statistics tracker
func WithProgress(tracker *progress.Progress) Option {
	return func(s *Service) {
		s.progress = tracker
	}
}
