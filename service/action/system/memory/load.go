package memory

import (
	"github.com/viant/ossim/runtime/process"
)

// DefaultKey is the metadata key used when LoadInput.Key is empty
const DefaultKey = "loaded"

// LoadInput defines what to read
type LoadInput struct {
	Frame  int    `json:"frame" description:"index into the frames owned by the process"`
	Offset int    `json:"offset,omitempty"`
	Size   int    `json:"size"`
	Key    string `json:"key,omitempty" description:"metadata key receiving the data"`
}

// LoadOutput carries the data read
type LoadOutput struct {
	Frame int    `json:"frame"`
	Data  string `json:"data"`
}

// Load reads a frame range and stores it in the process metadata
func (s *Service) Load(p *process.Process, input *LoadInput, output *LoadOutput) error {
	frame, err := s.owned(p, input.Frame)
	if err != nil {
		return err
	}
	data, err := s.frames.Read(frame, input.Offset, input.Size)
	if err != nil {
		return err
	}
	key := input.Key
	if key == "" {
		key = DefaultKey
	}
	p.Set(key, string(data))
	output.Frame = frame
	output.Data = string(data)
	return nil
}
