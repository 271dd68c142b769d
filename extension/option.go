package extension

import (
	"github.com/viant/structology/conv"
	"github.com/viant/x"
)

// Option configures Actions
type Option func(*Actions)

// WithConverter sets the argument converter
func WithConverter(converter *conv.Converter) Option {
	return func(a *Actions) {
		a.converter = converter
	}
}

// WithTypes registers additional data types
func WithTypes(types ...*x.Type) Option {
	return func(a *Actions) {
		for _, t := range types {
			a.types.Register(t)
		}
	}
}
