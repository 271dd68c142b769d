package types

// Service is a named group of instruction methods. Programs refer to a
// method as "<Name()>.<method>".
type Service interface {
	Name() string
	// Methods lists the methods with their input and output types
	Methods() Signatures
	// Method returns the executable for name, or an error wrapping ErrMethodNotFound
	Method(name string) (Executable, error)
}
