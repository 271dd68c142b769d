package extension

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/viant/ossim/model/types"
	"github.com/viant/ossim/runtime/process"
	"github.com/viant/structology/conv"
)

// Actions provides instruction services
type Actions struct {
	types     *Types
	services  map[string]types.Service
	converter *conv.Converter
	mux       sync.RWMutex
}

func (s *Actions) Types() *Types {
	return s.types
}

// Lookup returns a service by name
func (s *Actions) Lookup(name string) types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.services[name]
}

// Register registers a service together with its input and output types
func (s *Actions) Register(service types.Service) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, sig := range service.Methods() {
		s.types.RegisterType(sig.Input)
		s.types.RegisterType(sig.Output)
	}
	s.services[service.Name()] = service
}

// Ops returns every registered "service.method" in lexical order
func (s *Actions) Ops() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	var ret []string
	for name, service := range s.services {
		for _, sig := range service.Methods() {
			ret = append(ret, types.Op(name, sig.Name))
		}
	}
	sort.Strings(ret)
	return ret
}

// Signature returns the signature behind op
func (s *Actions) Signature(op string) (*types.Signature, error) {
	service, method, err := s.resolve(op)
	if err != nil {
		return nil, err
	}
	sig := service.Methods().Lookup(method)
	if sig == nil {
		return nil, types.NewMethodNotFoundError(op)
	}
	return sig, nil
}

// Instruction binds op with args converted to the method input
func (s *Actions) Instruction(op string, args map[string]interface{}) (process.Instruction, error) {
	service, method, err := s.resolve(op)
	if err != nil {
		return nil, err
	}
	sig := service.Methods().Lookup(method)
	if sig == nil {
		return nil, types.NewMethodNotFoundError(op)
	}
	executable, err := service.Method(method)
	if err != nil {
		return nil, err
	}
	input, err := s.input(sig.Input, args)
	if err != nil {
		return nil, fmt.Errorf("invalid %v args: %w", op, err)
	}
	outputType := sig.Output
	return process.InstructionFunc(func(ctx context.Context, p *process.Process) error {
		return executable(process.NewContext(ctx, p), input, newInstancePtr(outputType))
	}), nil
}

func (s *Actions) input(inputType reflect.Type, args map[string]interface{}) (interface{}, error) {
	instance := newInstancePtr(inputType)
	if instance == nil || len(args) == 0 {
		return instance, nil
	}
	if err := s.converter.Convert(args, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// resolve splits "service.method" on the last dot
func (s *Actions) resolve(op string) (types.Service, string, error) {
	name, method, err := types.SplitOp(op)
	if err != nil {
		return nil, "", err
	}
	service := s.Lookup(name)
	if service == nil {
		return nil, "", fmt.Errorf("unknown service %v", name)
	}
	return service, method, nil
}

func newInstancePtr(rType reflect.Type) interface{} {
	if rType == nil {
		return nil
	}
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return reflect.New(rType).Interface()
}

// NewActions creates an action registry
func NewActions(options ...Option) *Actions {
	ret := &Actions{
		types:    NewTypes(),
		services: make(map[string]types.Service),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.converter == nil {
		options := conv.DefaultOptions()
		options.ClonePointerData = true
		options.IgnoreUnmapped = true
		options.AccessUnexported = true
		ret.converter = conv.NewConverter(options)
	}
	return ret
}
