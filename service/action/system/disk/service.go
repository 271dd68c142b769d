package disk

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/ossim/model/types"
	"github.com/viant/ossim/runtime/process"
)

const name = "system/disk"

// Disk is the virtual disk used by disk instructions
type Disk interface {
	Read(ctx context.Context, name string) (string, error)
	Write(ctx context.Context, name, content string) error
	Delete(ctx context.Context, name string) (bool, error)
}

// Service provides virtual disk instructions
type Service struct {
	disk Disk
}

// New creates a disk instruction service
func New(disk Disk) *Service {
	return &Service{disk: disk}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "write",
			Description: "Creates or replaces a virtual file.",
			Input:       reflect.TypeOf(&WriteInput{}),
			Output:      reflect.TypeOf(&WriteOutput{}),
		},
		{
			Name:        "read",
			Description: "Reads a virtual file into process metadata.",
			Input:       reflect.TypeOf(&ReadInput{}),
			Output:      reflect.TypeOf(&ReadOutput{}),
		},
		{
			Name:        "delete",
			Description: "Removes a virtual file.",
			Input:       reflect.TypeOf(&DeleteInput{}),
			Output:      reflect.TypeOf(&DeleteOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "write":
		return s.write, nil
	case "read":
		return s.read, nil
	case "delete":
		return s.delete, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) write(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*WriteInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*WriteOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Write(ctx, input, output)
}

func (s *Service) read(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ReadInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ReadOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	p, ok := process.FromContext(ctx)
	if !ok {
		return types.NewNoProcessError("read")
	}
	return s.Read(ctx, p, input, output)
}

func (s *Service) delete(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*DeleteInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*DeleteOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Delete(ctx, input, output)
}
