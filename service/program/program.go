package program

import (
	"fmt"

	"github.com/viant/ossim/runtime/process"
	"gopkg.in/yaml.v3"
)

// MaxRepeat caps the expansion of a single step
const MaxRepeat = 10000

// Step declares an instruction, optionally repeated
type Step struct {
	Op     string                 `json:"op" yaml:"op"`
	Args   map[string]interface{} `json:"args,omitempty" yaml:"args,omitempty"`
	Repeat int                    `json:"repeat,omitempty" yaml:"repeat,omitempty"`
}

// Count returns how many instructions the step expands to
func (s *Step) Count() int {
	if s.Repeat == 0 {
		return 1
	}
	return s.Repeat
}

// Program is a named instruction list
type Program struct {
	Name         string  `json:"name" yaml:"name"`
	Instructions []*Step `json:"instructions" yaml:"instructions"`
}

// Builder binds an op to an executable instruction
type Builder interface {
	Instruction(op string, args map[string]interface{}) (process.Instruction, error)
}

// Validate checks program structure
func (p *Program) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("program name was empty")
	}
	for i, step := range p.Instructions {
		if step == nil || step.Op == "" {
			return fmt.Errorf("program %v: instruction %d: op was empty", p.Name, i)
		}
		if step.Repeat < 0 || step.Repeat > MaxRepeat {
			return fmt.Errorf("program %v: instruction %d: repeat %d out of range [0, %d]", p.Name, i, step.Repeat, MaxRepeat)
		}
	}
	return nil
}

// Len returns the number of instructions after repeat expansion
func (p *Program) Len() int {
	ret := 0
	for _, step := range p.Instructions {
		ret += step.Count()
	}
	return ret
}

// Build expands steps into instructions
func (p *Program) Build(builder Builder) ([]process.Instruction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ret := make([]process.Instruction, 0, p.Len())
	for i, step := range p.Instructions {
		instruction, err := builder.Instruction(step.Op, step.Args)
		if err != nil {
			return nil, fmt.Errorf("program %v: instruction %d: %w", p.Name, i, err)
		}
		for j := 0; j < step.Count(); j++ {
			ret = append(ret, instruction)
		}
	}
	return ret, nil
}

// DecodeYAML decodes and validates a program
func DecodeYAML(data []byte) (*Program, error) {
	ret := &Program{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode program: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Echo returns the program the shell runs by default: count print
// instructions announcing name.
func Echo(name string, count int) *Program {
	ret := &Program{Name: name}
	for i := 0; i < count; i++ {
		ret.Instructions = append(ret.Instructions, &Step{
			Op:   "printer.print",
			Args: map[string]interface{}{"message": fmt.Sprintf("running %s %d", name, i)},
		})
	}
	return ret
}
