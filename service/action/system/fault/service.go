package fault

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/viant/ossim/model/types"
)

const name = "system/fault"

const defaultMessage = "instruction fault"

// Service provides instructions that always fail, used to exercise fault isolation
type Service struct{}

type Input struct {
	Message string `json:"message,omitempty"`
}

type Output struct{}

func New() *Service {
	return &Service{}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "fail",
			Description: "Returns an error terminating the process.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&Output{}),
		},
		{
			Name:        "panic",
			Description: "Panics; the scheduler recovers and terminates the process.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&Output{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "fail":
		return s.fail, nil
	case "panic":
		return s.crash, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) fail(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	return errors.New(message(input))
}

func (s *Service) crash(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	panic(message(input))
}

func message(input *Input) string {
	if input.Message == "" {
		return defaultMessage
	}
	return input.Message
}
