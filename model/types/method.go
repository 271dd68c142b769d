package types

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Signatures lists the methods of a service
type Signatures []Signature

// Lookup returns the signature named name or nil
func (s Signatures) Lookup(name string) *Signature {
	for i := range s {
		if s[i].Name == name {
			return &s[i]
		}
	}
	return nil
}

// Signature describes one instruction method. Input and Output are pointer
// types; a fresh value of each is created per bound instruction.
type Signature struct {
	Name        string
	Description string
	Input       reflect.Type
	Output      reflect.Type
}

// Executable runs an instruction; ctx carries the running process
type Executable func(ctx context.Context, input, output interface{}) error

// Op joins a service and method name into the op used by programs
func Op(service, method string) string {
	return service + "." + method
}

// SplitOp splits op on its last dot, service names may contain slashes but
// never dots
func SplitOp(op string) (service, method string, err error) {
	idx := strings.LastIndex(op, ".")
	if idx <= 0 || idx == len(op)-1 {
		return "", "", fmt.Errorf("invalid op %q, expected service.method", op)
	}
	return op[:idx], op[idx+1:], nil
}
