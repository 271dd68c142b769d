package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/viant/ossim/progress"
	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/event"
	"github.com/viant/ossim/service/memory"
	"github.com/viant/ossim/service/program"
)

// DefaultPrompt is the prompt printed before every line
const DefaultPrompt = "ossim> "

// Command is a shell command
type Command interface {
	Name() string
	Aliases() []string
	Usage() string
	Description() string
	Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error
}

// Disk is the virtual disk
type Disk interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) (string, error)
	Write(ctx context.Context, name, content string) error
	Delete(ctx context.Context, name string) (bool, error)
	Format(ctx context.Context) error
}

// Processes is the process runtime
type Processes interface {
	RunProgram(ctx context.Context, aProgram *program.Program) (*process.Process, error)
	ListProcesses(ctx context.Context, states ...process.State) ([]process.Status, error)
	TerminateProcess(ctx context.Context, pid int) bool
}

// Programs loads program definitions
type Programs interface {
	Load(ctx context.Context, location string) (*program.Program, error)
}

// Memory is the inspected memory manager
type Memory interface {
	Status() memory.Status
	Owners() []int
}

// Stats returns run statistics
type Stats interface {
	Stats() progress.Progress
}

// Ops lists instruction ops
type Ops interface {
	Ops() []string
}

// Shell reads command lines and dispatches them to commands
type Shell struct {
	disk      Disk
	processes Processes
	programs  Programs
	memory    Memory
	stats     Stats
	ops       Ops

	prompt   string
	commands map[string]Command
	primary  []Command
	exit     bool
	out      atomic.Pointer[syncWriter]
}

type syncWriter struct {
	w   io.Writer
	mux sync.Mutex
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mux.Lock()
	defer w.mux.Unlock()
	return w.w.Write(p)
}

// Register adds commands under their names and aliases; later registrations win
func (s *Shell) Register(commands ...Command) {
	for _, command := range commands {
		if _, ok := s.commands[command.Name()]; !ok {
			s.primary = append(s.primary, command)
		} else {
			for i, candidate := range s.primary {
				if candidate.Name() == command.Name() {
					s.primary[i] = command
				}
			}
		}
		s.commands[command.Name()] = command
		for _, alias := range command.Aliases() {
			s.commands[alias] = command
		}
	}
	sort.Slice(s.primary, func(i, j int) bool { return s.primary[i].Name() < s.primary[j].Name() })
}

// Lookup returns a command by name or alias
func (s *Shell) Lookup(name string) (Command, bool) {
	command, ok := s.commands[name]
	return command, ok
}

// Commands returns registered commands ordered by name, aliases excluded
func (s *Shell) Commands() []Command {
	return s.primary
}

// Exit asks the REPL to stop after the current line
func (s *Shell) Exit() {
	s.exit = true
}

// Execute runs one command line. Errors are returned; Run prints them.
func (s *Shell) Execute(ctx context.Context, line string, stdout io.Writer) error {
	args, err := Split(line)
	if err != nil || len(args) == 0 {
		return err
	}
	command, ok := s.commands[args[0]]
	if !ok {
		return fmt.Errorf("command not found: %v, use 'help'", args[0])
	}
	if err = command.Execute(ctx, s, args[1:], stdout); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("usage: %v", command.Usage())
		}
		return fmt.Errorf("%v: %w", args[0], err)
	}
	return nil
}

// Run reads lines from in until exit, end of input or ctx cancellation
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	writer := &syncWriter{w: out}
	s.out.Store(writer)
	defer s.out.Store(nil)
	s.exit = false
	fmt.Fprintln(writer, "Welcome to the ossim shell. Type 'help' to list commands.")
	scanner := bufio.NewScanner(in)
	for !s.exit {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(writer, s.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(writer)
			return scanner.Err()
		}
		if err := s.Execute(ctx, scanner.Text(), writer); err != nil {
			fmt.Fprintf(writer, "error: %v\n", err)
		}
	}
	return nil
}

// OnEvent prints process faults and allocation failures as they happen
func (s *Shell) OnEvent(anEvent *event.Event[process.Status]) {
	writer := s.out.Load()
	if anEvent == nil || anEvent.Context == nil || writer == nil {
		return
	}
	switch anEvent.Type() {
	case process.EventFaulted:
		fmt.Fprintf(writer, "\n[process %d - %s] fault: %s\n", anEvent.Context.PID, anEvent.Context.Name, anEvent.Context.Message)
	case process.EventOutOfMemory:
		fmt.Fprintf(writer, "\n[process %d - %s] no frames: %s\n", anEvent.Context.PID, anEvent.Context.Name, anEvent.Context.Message)
	}
}

// New creates a shell with the built-in commands
func New(options ...Option) *Shell {
	ret := &Shell{
		prompt:   DefaultPrompt,
		commands: make(map[string]Command),
	}
	ret.Register(builtins()...)
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
