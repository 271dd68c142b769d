package disk

import (
	"context"
	"fmt"

	"github.com/viant/ossim/runtime/process"
)

// ReadInput defines the file to read
type ReadInput struct {
	Name string `json:"name" required:"true"`
	Key  string `json:"key,omitempty" description:"metadata key receiving the content, defaults to the file name"`
}

// ReadOutput carries the file content
type ReadOutput struct {
	Content string `json:"content"`
}

// Read loads a virtual file into the process metadata
func (s *Service) Read(ctx context.Context, p *process.Process, input *ReadInput, output *ReadOutput) error {
	if input.Name == "" {
		return fmt.Errorf("name is required")
	}
	content, err := s.disk.Read(ctx, input.Name)
	if err != nil {
		return err
	}
	key := input.Key
	if key == "" {
		key = input.Name
	}
	p.Set(key, content)
	output.Content = content
	return nil
}
