package disk

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

const separator = "::"

// DefaultURL is the disk location used when none is configured
const DefaultURL = "disco_virtual.txt"

// Config represents virtual disk configuration
type Config struct {
	URL string `json:"url" yaml:"url"`
}

// DefaultConfig returns the default disk configuration
func DefaultConfig() Config {
	return Config{URL: DefaultURL}
}

// Entry is a single virtual file
type Entry struct {
	Name    string
	Content string
}

// Service manages the virtual disk. Every operation reads the backing file,
// so external edits are observed; a missing file is an empty disk.
type Service struct {
	fs  afs.Service
	url string
	mux sync.Mutex
}

// URL returns the backing file location
func (s *Service) URL() string {
	return s.url
}

// List returns file names in disk order
func (s *Service) List(ctx context.Context) ([]string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		ret = append(ret, entry.Name)
	}
	return ret, nil
}

// Read returns the content of name
func (s *Service) Read(ctx context.Context, name string) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	entries, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.Name == name {
			return entry.Content, nil
		}
	}
	return "", fmt.Errorf("%w: %v", ErrFileNotFound, name)
}

// Write creates name or replaces its content in place
func (s *Service) Write(ctx context.Context, name, content string) error {
	if name == "" || strings.Contains(name, separator) || strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(content, "\r\n") {
		return fmt.Errorf("%w: %v spans multiple lines", ErrInvalidContent, name)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	entries, err := s.load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range entries {
		if entries[i].Name == name {
			entries[i].Content = content
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, Entry{Name: name, Content: content})
	}
	return s.store(ctx, entries)
}

// Delete removes name and reports whether it existed
func (s *Service) Delete(ctx context.Context, name string) (bool, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	entries, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	kept := entries[:0]
	for _, entry := range entries {
		if entry.Name != name {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(entries) {
		return false, nil
	}
	return true, s.store(ctx, kept)
}

// Format erases every file
func (s *Service) Format(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.store(ctx, nil)
}

func (s *Service) load(ctx context.Context) ([]Entry, error) {
	exists, err := s.fs.Exists(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to check disk %v: %w", s.url, err)
	}
	if !exists {
		return nil, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk %v: %w", s.url, err)
	}
	return Decode(data), nil
}

func (s *Service) store(ctx context.Context, entries []Entry) error {
	if err := s.fs.Upload(ctx, s.url, file.DefaultFileOsMode, bytes.NewReader(Encode(entries))); err != nil {
		return fmt.Errorf("failed to write disk %v: %w", s.url, err)
	}
	return nil
}

// Decode parses disk content; lines without a separator are skipped
func Decode(data []byte) []Entry {
	var ret []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		name, content, ok := strings.Cut(line, separator)
		if !ok {
			continue
		}
		ret = append(ret, Entry{Name: name, Content: content})
	}
	return ret
}

// Encode renders entries one per line
func Encode(entries []Entry) []byte {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Name+separator+entry.Content)
	}
	return []byte(strings.Join(lines, "\n"))
}

// New creates a disk backed by URL
func New(fs afs.Service, URL string) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if URL == "" {
		URL = DefaultURL
	}
	return &Service{fs: fs, url: URL}
}
