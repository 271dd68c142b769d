package memory

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/ossim/model/types"
	"github.com/viant/ossim/runtime/process"
)

const name = "system/memory"

// Frames is the part of the memory manager used by memory instructions
type Frames interface {
	Write(frame, offset int, data []byte) error
	Read(frame, offset, size int) ([]byte, error)
	Owner(frame int) (int, bool)
}

// Service provides instructions accessing the frames owned by a process
type Service struct {
	frames Frames
}

// New creates a memory instruction service
func New(frames Frames) *Service {
	return &Service{frames: frames}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "store",
			Description: "Writes data into one of the frames owned by the process.",
			Input:       reflect.TypeOf(&StoreInput{}),
			Output:      reflect.TypeOf(&StoreOutput{}),
		},
		{
			Name:        "load",
			Description: "Reads a frame range into process metadata.",
			Input:       reflect.TypeOf(&LoadInput{}),
			Output:      reflect.TypeOf(&LoadOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "store":
		return s.store, nil
	case "load":
		return s.load, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) store(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*StoreInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*StoreOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	p, ok := process.FromContext(ctx)
	if !ok {
		return types.NewNoProcessError("store")
	}
	return s.Store(p, input, output)
}

func (s *Service) load(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*LoadInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*LoadOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	p, ok := process.FromContext(ctx)
	if !ok {
		return types.NewNoProcessError("load")
	}
	return s.Load(p, input, output)
}
