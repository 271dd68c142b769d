package dao

// StateParameter is the parameter name used to filter records by state
const StateParameter = "State"

// Parameter is a List filter
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a filter matching any of values
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
