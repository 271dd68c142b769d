package nop

import (
	"context"
	"reflect"

	"github.com/viant/ossim/model/types"
)

const (
	name   = "nop"
	method = "nop"
)

// Service provides an instruction that only consumes a quantum slot
type Service struct{}

type Input struct{}

type Output struct{}

var signatures = types.Signatures{{
	Name:        method,
	Description: "Does nothing; counts as one executed instruction.",
	Input:       reflect.TypeOf(&Input{}),
	Output:      reflect.TypeOf(&Output{}),
}}

func New() *Service {
	return &Service{}
}

func (s *Service) Name() string {
	return name
}

func (s *Service) Methods() types.Signatures {
	return signatures
}

func (s *Service) Method(name string) (types.Executable, error) {
	if name != method {
		return nil, types.NewMethodNotFoundError(types.Op(s.Name(), name))
	}
	return func(context.Context, interface{}, interface{}) error { return nil }, nil
}
