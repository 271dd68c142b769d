package program

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads programs from any afs supported location
type Service struct {
	fs      afs.Service
	baseURL string
}

// Option configures the loader
type Option func(s *Service)

// WithBaseURL resolves relative program locations against baseURL
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = baseURL
	}
}

// WithFs sets the file system
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// Load reads and decodes a program; the name defaults to the file name
// without extension.
func (s *Service) Load(ctx context.Context, location string) (*Program, error) {
	URL := s.resolve(location)
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load program %v: %w", URL, err)
	}
	ret := &Program{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode program %v: %w", URL, err)
	}
	if ret.Name == "" {
		base := path.Base(url.Path(URL))
		ret.Name = strings.TrimSuffix(base, path.Ext(base))
	}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) resolve(location string) string {
	if s.baseURL == "" || !url.IsRelative(location) {
		return location
	}
	return url.Join(s.baseURL, location)
}

// New creates a program loader
func New(options ...Option) *Service {
	ret := &Service{}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}
