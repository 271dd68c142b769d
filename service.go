package ossim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/viant/afs"
	"github.com/viant/ossim/extension"
	"github.com/viant/ossim/internal/logging"
	"github.com/viant/ossim/model/types"
	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/action/nop"
	"github.com/viant/ossim/service/action/printer"
	acpu "github.com/viant/ossim/service/action/system/cpu"
	adisk "github.com/viant/ossim/service/action/system/disk"
	afault "github.com/viant/ossim/service/action/system/fault"
	amemory "github.com/viant/ossim/service/action/system/memory"
	"github.com/viant/ossim/service/dao"
	pmemory "github.com/viant/ossim/service/dao/process/memory"
	"github.com/viant/ossim/service/disk"
	"github.com/viant/ossim/service/event"
	"github.com/viant/ossim/service/memory"
	"github.com/viant/ossim/service/program"
	"github.com/viant/ossim/service/scheduler"
	"github.com/viant/ossim/service/shell"
	"github.com/viant/ossim/tracing"
	"github.com/viant/x"
)

// Version is reported to the tracing provider
const Version = "0.1.0"

// Service wires the simulator components together
type Service struct {
	config            *Config
	runtime           *Runtime
	actions           *extension.Actions
	extensionTypes    []*x.Type
	extensionServices []types.Service
	eventService      *event.Service
	processDAO        dao.Service[int, process.Process]
	logger            *slog.Logger
	fs                afs.Service
	stdout            io.Writer
	demo              []*program.Program
	diskURL           string
	traceErr          error
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.diskURL != "" {
		s.config.Disk.URL = s.diskURL
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.ensureBaseSetup()
	if s.traceErr != nil {
		s.logger.Warn("tracing disabled", "error", s.traceErr)
	}

	mem, err := memory.New(s.config.Memory)
	if err != nil {
		return err
	}
	aDisk := disk.New(s.fs, s.config.Disk.URL)
	s.actions = extension.NewActions(extension.WithTypes(s.extensionTypes...))
	s.actions.Register(printer.NewWithWriter(s.stdout))
	s.actions.Register(nop.New())
	s.actions.Register(amemory.New(mem))
	s.actions.Register(adisk.New(aDisk))
	s.actions.Register(afault.New())
	s.actions.Register(acpu.New())
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}

	sched, err := scheduler.New(
		scheduler.WithConfig(s.config.Scheduler),
		scheduler.WithMemory(mem),
		scheduler.WithProcessDAO(s.processDAO),
		scheduler.WithPublisher(event.PublisherOf[process.Status](s.eventService)),
		scheduler.WithLogger(s.logger))
	if err != nil {
		return err
	}
	s.runtime = &Runtime{
		scheduler: sched,
		memory:    mem,
		disk:      aDisk,
		actions:   s.actions,
		programs:  program.New(program.WithFs(s.fs), program.WithBaseURL(s.config.Programs.BaseURL)),
		events:    s.eventService,
		logger:    s.logger.With("module", "runtime"),
		demo:      s.demo,
	}
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.logger == nil {
		s.logger = logging.New(s.config.Log, nil)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.stdout == nil {
		s.stdout = os.Stdout
	}
	if s.eventService == nil {
		s.eventService = event.New()
	}
	if s.processDAO == nil {
		s.processDAO = pmemory.New()
	}
	if s.config.Tracing.Enabled && s.traceErr == nil {
		s.traceErr = tracing.Init(s.config.Tracing.Service, Version, s.config.Tracing.Output)
	}
}

// RegisterExtensionTypes registers additional instruction data types
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.actions.Types().Register(types[i])
	}
}

// RegisterExtensionServices registers additional instruction services
func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.actions.Register(services[i])
	}
}

// Runtime returns the process runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Actions returns the instruction registry
func (s *Service) Actions() *extension.Actions {
	return s.actions
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// EventService returns the event service carrying process lifecycle events
func (s *Service) EventService() *event.Service {
	return s.eventService
}

// Shell creates a shell bound to the runtime. Process lifecycle events are
// delivered to the shell until ctx is cancelled.
func (s *Service) Shell(ctx context.Context, options ...shell.Option) *shell.Shell {
	rt := s.runtime
	options = append([]shell.Option{
		shell.WithDisk(rt.disk),
		shell.WithProcesses(rt),
		shell.WithPrograms(rt.programs),
		shell.WithMemory(rt.memory),
		shell.WithStats(rt),
		shell.WithOps(rt),
	}, options...)
	sh := shell.New(options...)
	event.SetListenerOf[process.Status](ctx, s.eventService, sh.OnEvent)
	return sh
}

// New creates a simulator service
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	if err := ret.init(options); err != nil {
		return nil, fmt.Errorf("failed to initialise ossim: %w", err)
	}
	return ret, nil
}
