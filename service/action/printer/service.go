package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/viant/ossim/model/types"
	"github.com/viant/ossim/runtime/process"
)

const name = "printer"

// Service prints messages on behalf of a process
type Service struct {
	writer io.Writer
	mux    sync.Mutex
}

type Input struct {
	Message string `json:"message"`
}

type Output struct{}

// New creates a printer writing to standard output
func New() *Service {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter creates a printer writing to w
func NewWithWriter(w io.Writer) *Service {
	if w == nil {
		w = os.Stdout
	}
	return &Service{writer: w}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "print",
			Description: "Prints the message prefixed with the process id and name.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&Output{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "print":
		return s.print, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) print(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if p, ok := process.FromContext(ctx); ok {
		_, err := fmt.Fprintf(s.writer, "[process %d - %s] %s\n", p.PID, p.Name, input.Message)
		return err
	}
	_, err := fmt.Fprintln(s.writer, input.Message)
	return err
}
