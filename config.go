package ossim

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/ossim/internal/logging"
	"github.com/viant/ossim/service/disk"
	"github.com/viant/ossim/service/memory"
	"github.com/viant/ossim/service/scheduler"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the simulator configuration.
// Sections left out of a config file keep their package defaults.
type Config struct {
	Scheduler scheduler.Config `json:"scheduler" yaml:"scheduler"`
	Memory    memory.Config    `json:"memory" yaml:"memory"`
	Disk      disk.Config      `json:"disk" yaml:"disk"`
	Log       logging.Config   `json:"log" yaml:"log"`
	Tracing   TracingConfig    `json:"tracing" yaml:"tracing"`
	Programs  ProgramsConfig   `json:"programs" yaml:"programs"`
}

// TracingConfig controls the OpenTelemetry exporter
type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Service string `json:"service" yaml:"service"`
	// Output is a trace file; empty means stdout
	Output string `json:"output" yaml:"output"`
}

// ProgramsConfig controls program loading
type ProgramsConfig struct {
	BaseURL string `json:"baseURL" yaml:"baseURL"`
}

// DefaultConfig returns the defaults of every component
func DefaultConfig() *Config {
	return &Config{
		Scheduler: scheduler.DefaultConfig(),
		Memory:    memory.DefaultConfig(),
		Disk:      disk.DefaultConfig(),
		Log:       logging.DefaultConfig(),
		Tracing:   TracingConfig{Service: "ossim"},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if err := c.Scheduler.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Memory.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Disk.URL == "" {
		errs = append(errs, fmt.Errorf("disk.url was empty"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML (or JSON) config from URL on top of DefaultConfig
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
