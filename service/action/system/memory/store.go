package memory

import (
	"fmt"

	"github.com/viant/ossim/runtime/process"
)

// StoreInput defines what to write
type StoreInput struct {
	Frame  int    `json:"frame" description:"index into the frames owned by the process"`
	Offset int    `json:"offset,omitempty"`
	Data   string `json:"data"`
}

// StoreOutput reports the physical frame written
type StoreOutput struct {
	Frame int `json:"frame"`
	Bytes int `json:"bytes"`
}

// Store writes input.Data into the process frame
func (s *Service) Store(p *process.Process, input *StoreInput, output *StoreOutput) error {
	frame, err := s.owned(p, input.Frame)
	if err != nil {
		return err
	}
	if err = s.frames.Write(frame, input.Offset, []byte(input.Data)); err != nil {
		return err
	}
	output.Frame = frame
	output.Bytes = len(input.Data)
	return nil
}

// owned maps a process frame index to a physical frame still owned by p
func (s *Service) owned(p *process.Process, index int) (int, error) {
	frame, err := p.Frame(index)
	if err != nil {
		return 0, fmt.Errorf("frame %d: %w", index, err)
	}
	if owner, ok := s.frames.Owner(frame); !ok || owner != p.PID {
		return 0, fmt.Errorf("frame %d is not owned by process %d", frame, p.PID)
	}
	return frame, nil
}
