package disk

import (
	"context"
	"fmt"
)

// WriteInput defines the file to write
type WriteInput struct {
	Name    string `json:"name" required:"true"`
	Content string `json:"content"`
}

// WriteOutput reports the written size
type WriteOutput struct {
	Bytes int `json:"bytes"`
}

// Write creates or replaces a virtual file
func (s *Service) Write(ctx context.Context, input *WriteInput, output *WriteOutput) error {
	if input.Name == "" {
		return fmt.Errorf("name is required")
	}
	if err := s.disk.Write(ctx, input.Name, input.Content); err != nil {
		return err
	}
	output.Bytes = len(input.Content)
	return nil
}
