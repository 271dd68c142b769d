package extension

import (
	"fmt"
	"reflect"

	"github.com/viant/x"
)

// Types keeps instruction input and output types by package qualified name
type Types struct {
	x.Registry
}

// Register adds a data type to the registry
func (t *Types) Register(dataType *x.Type) {
	if dataType == nil {
		return
	}
	t.Registry.Register(dataType)
}

// RegisterType registers rType, dereferencing pointers
func (t *Types) RegisterType(rType reflect.Type) {
	if rType == nil {
		return
	}
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	t.Register(x.NewType(rType))
}

// Lookup returns a registered data type, or nil
func (t *Types) Lookup(dataType string) *x.Type {
	return t.Registry.Lookup(dataType)
}

// LookupType returns the registered type matching rType, or nil
func (t *Types) LookupType(rType reflect.Type) *x.Type {
	if rType == nil {
		return nil
	}
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return t.Lookup(fmt.Sprintf("%s.%s", rType.PkgPath(), rType.Name()))
}

// NewTypes creates a new types
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{
		Registry: *x.NewRegistry(options...),
	}
}
