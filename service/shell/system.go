package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
	"github.com/viant/ossim/internal/clock"
)

type HelpCommand struct{ info }

func NewHelpCommand() *HelpCommand {
	return &HelpCommand{info{name: "help", aliases: []string{"ayuda"}, usage: "help", description: "Lists the available commands."}}
}

func (c *HelpCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	fmt.Fprintln(stdout, "Available commands:")
	for _, command := range sh.Commands() {
		fmt.Fprintf(stdout, " - %-24s %s", command.Usage(), command.Description())
		if aliases := command.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(stdout, " (%s)", strings.Join(aliases, ", "))
		}
		fmt.Fprintln(stdout)
	}
	return nil
}

type MemstatCommand struct{ info }

func NewMemstatCommand() *MemstatCommand {
	return &MemstatCommand{info{name: "memstat", aliases: []string{"memoria"}, usage: "memstat", description: "Shows frame usage and owners."}}
}

func (c *MemstatCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if sh.memory == nil {
		return ErrUnavailable
	}
	status := sh.memory.Status()
	frameSize := uint64(status.FrameSize)
	fmt.Fprintln(stdout, "=== Memory ===")
	fmt.Fprintf(stdout, "Frames total : %d (%s)\n", status.FramesTotal, humanize.IBytes(frameSize*uint64(status.FramesTotal)))
	fmt.Fprintf(stdout, "Frames used  : %d (%s)\n", status.FramesUsed, humanize.IBytes(frameSize*uint64(status.FramesUsed)))
	fmt.Fprintf(stdout, "Frames free  : %d (%s)\n", status.FramesFree, humanize.IBytes(frameSize*uint64(status.FramesFree)))
	fmt.Fprintf(stdout, "Frame size   : %s\n", humanize.IBytes(frameSize))

	names := map[int]string{}
	if sh.processes != nil {
		if statuses, err := sh.processes.ListProcesses(ctx); err == nil {
			for _, p := range statuses {
				names[p.PID] = p.Name
			}
		}
	}
	fmt.Fprintln(stdout, "\nFrames:")
	for i, owner := range sh.memory.Owners() {
		if owner == 0 {
			fmt.Fprintf(stdout, " %3d: free\n", i)
			continue
		}
		name, ok := names[owner]
		if !ok {
			name = "?"
		}
		fmt.Fprintf(stdout, " %3d: PID=%d / %s\n", i, owner, name)
	}
	return nil
}

type StatsCommand struct{ info }

func NewStatsCommand() *StatsCommand {
	return &StatsCommand{info{name: "stats", usage: "stats", description: "Shows scheduler statistics."}}
}

func (c *StatsCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if sh.stats == nil {
		return ErrUnavailable
	}
	snapshot := sh.stats.Stats()
	fmt.Fprintf(stdout, "uptime       : %v\n", clock.Since(snapshot.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(stdout, "created      : %s\n", humanize.Comma(int64(snapshot.Created)))
	fmt.Fprintf(stdout, "active       : %s\n", humanize.Comma(int64(snapshot.Created-snapshot.Terminated)))
	fmt.Fprintf(stdout, "terminated   : %s\n", humanize.Comma(int64(snapshot.Terminated)))
	fmt.Fprintf(stdout, "faulted      : %s\n", humanize.Comma(int64(snapshot.Faulted)))
	fmt.Fprintf(stdout, "killed       : %s\n", humanize.Comma(int64(snapshot.Killed)))
	fmt.Fprintf(stdout, "instructions : %s\n", humanize.Comma(int64(snapshot.Instructions)))
	fmt.Fprintf(stdout, "rounds       : %s\n", humanize.Comma(int64(snapshot.Rounds)))
	fmt.Fprintf(stdout, "preemptions  : %s\n", humanize.Comma(int64(snapshot.Preemptions)))
	if sh.processes == nil {
		return nil
	}
	return c.cpuTime(ctx, sh, stdout)
}

// cpuTime summarises simulated CPU time of terminated processes in milliseconds
func (c *StatsCommand) cpuTime(ctx context.Context, sh *Shell, stdout io.Writer) error {
	statuses, err := sh.processes.ListProcesses(ctx)
	if err != nil {
		return err
	}
	var data stats.Float64Data
	for _, status := range statuses {
		if status.State.IsTerminated() {
			data = append(data, float64(status.CPUTime.Microseconds())/1000.0)
		}
	}
	if len(data) == 0 {
		return nil
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return err
	}
	median, err := stats.Median(data)
	if err != nil {
		return err
	}
	maximum, err := stats.Max(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "cpu mean     : %.1fms\n", mean)
	fmt.Fprintf(stdout, "cpu median   : %.1fms\n", median)
	fmt.Fprintf(stdout, "cpu max      : %.1fms\n", maximum)
	return nil
}

type OpsCommand struct{ info }

func NewOpsCommand() *OpsCommand {
	return &OpsCommand{info{name: "ops", usage: "ops", description: "Lists instruction ops usable in programs."}}
}

func (c *OpsCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if sh.ops == nil {
		return ErrUnavailable
	}
	for _, op := range sh.ops.Ops() {
		fmt.Fprintln(stdout, op)
	}
	return nil
}

type ExitCommand struct{ info }

func NewExitCommand() *ExitCommand {
	return &ExitCommand{info{name: "exit", aliases: []string{"salir"}, usage: "exit", description: "Leaves the shell."}}
}

func (c *ExitCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	fmt.Fprintln(stdout, "bye")
	sh.Exit()
	return nil
}
