package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/program"
)

// DefaultRunCount is the number of print instructions run creates
const DefaultRunCount = 3

type RunCommand struct{ info }

func NewRunCommand() *RunCommand {
	return &RunCommand{info{name: "run", aliases: []string{"ejecutar", "crearproceso"}, usage: "run <name> [count]", description: "Creates a process printing its name count times (default 3)."}}
}

func (c *RunCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	count := DefaultRunCount
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 || n > program.MaxRepeat {
			return ErrUsage
		}
		count = n
	}
	if sh.processes == nil {
		return ErrUnavailable
	}
	aProcess, err := sh.processes.RunProgram(ctx, program.Echo(args[0], count))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "process created with PID %d\n", aProcess.PID)
	return nil
}

type ExecCommand struct{ info }

func NewExecCommand() *ExecCommand {
	return &ExecCommand{info{name: "exec", usage: "exec <program url>", description: "Loads a YAML program and runs it as a new process."}}
}

func (c *ExecCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if sh.processes == nil || sh.programs == nil {
		return ErrUnavailable
	}
	aProgram, err := sh.programs.Load(ctx, args[0])
	if err != nil {
		return err
	}
	aProcess, err := sh.processes.RunProgram(ctx, aProgram)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "process %v created with PID %d (%d instructions)\n", aProcess.Name, aProcess.PID, aProcess.Len())
	return nil
}

type PsCommand struct{ info }

func NewPsCommand() *PsCommand {
	return &PsCommand{info{name: "ps", aliases: []string{"procesos"}, usage: "ps [ready|running|terminated]", description: "Lists processes, terminated ones included, optionally by state."}}
}

func (c *PsCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if len(args) > 1 {
		return ErrUsage
	}
	var states []process.State
	if len(args) == 1 {
		state, ok := process.ParseState(args[0])
		if !ok {
			return ErrUsage
		}
		states = append(states, state)
	}
	if sh.processes == nil {
		return ErrUnavailable
	}
	statuses, err := sh.processes.ListProcesses(ctx, states...)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		fmt.Fprintln(stdout, "no processes")
		return nil
	}
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PID\tNAME\tSTATE\tPC\tFRAMES\tCPU")
	for _, status := range statuses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%d\t%v\n", status.PID, status.Name, status.State, status.PC, status.Instructions, len(status.Frames), status.CPUTime)
	}
	return w.Flush()
}

type KillCommand struct{ info }

func NewKillCommand() *KillCommand {
	return &KillCommand{info{name: "kill", aliases: []string{"terminar"}, usage: "kill <pid>", description: "Terminates a process and frees its frames."}}
}

func (c *KillCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return ErrUsage
	}
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(stdout, "invalid pid")
		return nil
	}
	if sh.processes == nil {
		return ErrUnavailable
	}
	if sh.processes.TerminateProcess(ctx, pid) {
		fmt.Fprintln(stdout, "process terminated")
	} else {
		fmt.Fprintln(stdout, "pid not found")
	}
	return nil
}
