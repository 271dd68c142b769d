package cpu

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/viant/ossim/model/types"
)

const name = "system/cpu"

// MaxSleep caps a single sleep instruction
const MaxSleep = 5 * time.Second

// Service provides instructions simulating CPU bound work
type Service struct{}

type SleepInput struct {
	Duration string `json:"duration"`
}

type SleepOutput struct {
	Slept time.Duration `json:"slept"`
}

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
			Name:        "sleep",
			Description: "Blocks the running quantum for the given duration (e.g. 5ms).",
			Input:       reflect.TypeOf(&SleepInput{}),
			Output:      reflect.TypeOf(&SleepOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "sleep":
		return s.sleep, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) sleep(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SleepInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SleepOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	duration, err := time.ParseDuration(input.Duration)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", input.Duration, err)
	}
	if duration < 0 || duration > MaxSleep {
		return fmt.Errorf("duration %v out of range [0, %v]", duration, MaxSleep)
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	output.Slept = duration
	return nil
}
