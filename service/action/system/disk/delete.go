package disk

import "context"

// DeleteInput defines the file to remove
type DeleteInput struct {
	Name string `json:"name" required:"true"`
}

// DeleteOutput reports whether the file existed
type DeleteOutput struct {
	Deleted bool `json:"deleted"`
}

// Delete removes a virtual file; a missing file is not an error
func (s *Service) Delete(ctx context.Context, input *DeleteInput, output *DeleteOutput) error {
	deleted, err := s.disk.Delete(ctx, input.Name)
	if err != nil {
		return err
	}
	output.Deleted = deleted
	return nil
}
