package ossim

import (
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/ossim/model/types"
	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/dao"
	"github.com/viant/ossim/service/event"
	"github.com/viant/ossim/service/program"
	"github.com/viant/ossim/tracing"
	"github.com/viant/x"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the simulator service
type Option func(s *Service)

// WithConfig sets the configuration; nil keeps the defaults
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithFs sets the file system backing the disk and program loading
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithDiskURL sets the virtual disk location, taking precedence over Config.Disk
func WithDiskURL(URL string) Option {
	return func(s *Service) {
		s.diskURL = URL
	}
}

// WithStdout sets where process output (printer.print) goes
func WithStdout(w io.Writer) Option {
	return func(s *Service) {
		s.stdout = w
	}
}

// WithExtensionTypes sets the extension types
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = types
	}
}

// WithExtensionServices sets the extension services
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = services
	}
}

// WithEventService sets the event service
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithProcessDAO sets the process registry
func WithProcessDAO(processDAO dao.Service[int, process.Process]) Option {
	return func(s *Service) {
		s.processDAO = processDAO
	}
}

// WithDemoProcesses seeds programs once the runtime starts. Without
// arguments the two built-in demo programs are used.
func WithDemoProcesses(programs ...*program.Program) Option {
	return func(s *Service) {
		if len(programs) == 0 {
			programs = DemoPrograms()
		}
		s.demo = programs
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times; the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.traceErr = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.traceErr = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
