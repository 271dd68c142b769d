package shell

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/ossim/progress"
	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/disk"
	"github.com/viant/ossim/service/event"
	"github.com/viant/ossim/service/memory"
	"github.com/viant/ossim/service/program"
)

type fakeProcesses struct {
	programs   []*program.Program
	processes  []*process.Process
	terminated []int
}

func (f *fakeProcesses) RunProgram(ctx context.Context, aProgram *program.Program) (*process.Process, error) {
	f.programs = append(f.programs, aProgram)
	aProcess := process.New(len(f.processes)+1, aProgram.Name, make([]process.Instruction, aProgram.Len())...)
	f.processes = append(f.processes, aProcess)
	return aProcess, nil
}

func (f *fakeProcesses) ListProcesses(ctx context.Context, states ...process.State) ([]process.Status, error) {
	var ret []process.Status
	for _, p := range f.processes {
		status := p.Status()
		if len(states) > 0 && status.State != states[0] {
			continue
		}
		ret = append(ret, status)
	}
	return ret, nil
}

func (f *fakeProcesses) TerminateProcess(ctx context.Context, pid int) bool {
	if pid < 1 || pid > len(f.processes) {
		return false
	}
	f.terminated = append(f.terminated, pid)
	f.processes[pid-1].SetState(process.StateTerminated)
	return true
}

type fakePrograms struct{}

func (f *fakePrograms) Load(ctx context.Context, location string) (*program.Program, error) {
	return program.DecodeYAML([]byte("name: loaded\ninstructions:\n  - op: nop.nop\n    repeat: 5\n"))
}

type fakeStats struct{}

func (f *fakeStats) Stats() progress.Progress {
	return progress.Progress{StartedAt: time.Now(), Created: 1200, Terminated: 200, Instructions: 1234567}
}

type fakeOps []string

func (f fakeOps) Ops() []string { return f }

func newShell(t *testing.T, URL string) (*Shell, *fakeProcesses, *memory.Service) {
	ctx := context.Background()
	storage := disk.New(afs.New(), URL)
	require.NoError(t, storage.Format(ctx))
	mem, err := memory.New(memory.Config{Frames: 4, FrameSize: 1024})
	require.NoError(t, err)
	processes := &fakeProcesses{}
	return New(
		WithDisk(storage),
		WithProcesses(processes),
		WithPrograms(&fakePrograms{}),
		WithMemory(mem),
		WithStats(&fakeStats{}),
		WithOps(fakeOps{"nop.nop", "printer.print"}),
	), processes, mem
}

func TestShell_Files(t *testing.T) {
	ctx := context.Background()
	sh, _, _ := newShell(t, "mem://localhost/shell/files.txt")

	testCases := []struct {
		description string
		line        string
		expect      string
		expectErr   string
	}{
		{description: "write", line: `write hola.txt hola mundo`, expect: "written\n"},
		{description: "write alias quoted", line: `escribir "b.txt" 'dos palabras'`, expect: "written\n"},
		{description: "ls", line: "ls", expect: "hola.txt\nb.txt\n"},
		{description: "cat", line: "cat hola.txt", expect: "hola mundo\n"},
		{description: "cat alias", line: "ver b.txt", expect: "dos palabras\n"},
		{description: "cat missing", line: "mostrar nope", expect: "file not found\n"},
		{description: "cat usage", line: "cat", expectErr: "usage: cat <file>"},
		{description: "write usage", line: "write only", expectErr: "usage: write <file> <content>"},
		{description: "rm", line: "rm hola.txt", expect: "deleted\n"},
		{description: "rm missing", line: "borrar hola.txt", expect: "no such file\n"},
		{description: "listar", line: "listar", expect: "b.txt\n"},
		{description: "format", line: "formatear", expect: "disk formatted\n"},
		{description: "ls empty", line: "lista", expect: ""},
		{description: "unknown", line: "dir", expectErr: "command not found: dir, use 'help'"},
		{description: "syntax", line: `write "x`, expectErr: "shell: syntax error"},
		{description: "blank", line: "   ", expect: ""},
	}
	for _, testCase := range testCases {
		out := &bytes.Buffer{}
		err := sh.Execute(ctx, testCase.line, out)
		if testCase.expectErr != "" {
			require.Error(t, err, testCase.description)
			assert.Contains(t, err.Error(), testCase.expectErr, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, out.String(), testCase.description)
	}
}

func TestShell_Processes(t *testing.T) {
	ctx := context.Background()
	sh, processes, _ := newShell(t, "mem://localhost/shell/processes.txt")

	testCases := []struct {
		description string
		line        string
		expect      string
		expectErr   string
	}{
		{description: "ps empty", line: "ps", expect: "no processes\n"},
		{description: "run", line: "run demo", expect: "process created with PID 1\n"},
		{description: "run count", line: "crearproceso other 5", expect: "process created with PID 2\n"},
		{description: "run bad count", line: "ejecutar other many", expectErr: "usage: run <name> [count]"},
		{description: "exec", line: "exec mem://localhost/loaded.yaml", expect: "process loaded created with PID 3 (5 instructions)\n"},
		{description: "kill", line: "kill 2", expect: "process terminated\n"},
		{description: "kill unknown", line: "terminar 99", expect: "pid not found\n"},
		{description: "kill invalid", line: "kill two", expect: "invalid pid\n"},
	}
	for _, testCase := range testCases {
		out := &bytes.Buffer{}
		err := sh.Execute(ctx, testCase.line, out)
		if testCase.expectErr != "" {
			require.Error(t, err, testCase.description)
			assert.Contains(t, err.Error(), testCase.expectErr, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, out.String(), testCase.description)
	}

	require.Len(t, processes.programs, 3)
	assert.Equal(t, 3, processes.programs[0].Len())
	assert.Equal(t, "running demo 0", processes.programs[0].Instructions[0].Args["message"])
	assert.Equal(t, 5, processes.programs[1].Len())
	assert.Equal(t, []int{2}, processes.terminated)

	out := &bytes.Buffer{}
	require.NoError(t, sh.Execute(ctx, "procesos", out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PID")
	assert.Contains(t, lines[2], "other")
	assert.Contains(t, lines[2], "terminated")
	assert.Contains(t, lines[3], "0/5")

	out.Reset()
	require.NoError(t, sh.Execute(ctx, "ps terminated", out))
	lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "other")

	err := sh.Execute(ctx, "ps sleeping", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: ps [ready|running|terminated]")
}

func TestShell_System(t *testing.T) {
	ctx := context.Background()
	sh, processes, mem := newShell(t, "mem://localhost/shell/system.txt")
	_, err := processes.RunProgram(ctx, program.Echo("alpha", 1))
	require.NoError(t, err)
	_, err = mem.Allocate(1, 2)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	require.NoError(t, sh.Execute(ctx, "memoria", out))
	assert.Contains(t, out.String(), "Frames total : 4 (4.0 KiB)")
	assert.Contains(t, out.String(), "Frames used  : 2 (2.0 KiB)")
	assert.Contains(t, out.String(), "Frame size   : 1.0 KiB")
	assert.Contains(t, out.String(), "   0: PID=1 / alpha")
	assert.Contains(t, out.String(), "   3: free")

	out.Reset()
	require.NoError(t, sh.Execute(ctx, "stats", out))
	assert.Contains(t, out.String(), "created      : 1,200")
	assert.Contains(t, out.String(), "active       : 1,000")
	assert.Contains(t, out.String(), "instructions : 1,234,567")

	out.Reset()
	require.NoError(t, sh.Execute(ctx, "ops", out))
	assert.Equal(t, "nop.nop\nprinter.print\n", out.String())

	out.Reset()
	require.NoError(t, sh.Execute(ctx, "ayuda", out))
	assert.Contains(t, out.String(), "kill <pid>")
	assert.Contains(t, out.String(), "(terminar)")
	assert.Contains(t, out.String(), "(listar, lista)")
}

func TestShell_Unavailable(t *testing.T) {
	sh := New()
	for _, line := range []string{"ls", "ps", "memstat", "stats", "ops", "run x", "exec x"} {
		err := sh.Execute(context.Background(), line, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrUnavailable, line)
	}
}

func TestShell_Run(t *testing.T) {
	sh, _, _ := newShell(t, "mem://localhost/shell/run.txt")
	in := strings.NewReader("write a.txt x\nbogus\nsalir\nls\n")
	out := &bytes.Buffer{}
	require.NoError(t, sh.Run(context.Background(), in, out))

	output := out.String()
	assert.Contains(t, output, "Welcome")
	assert.Contains(t, output, "ossim> written")
	assert.Contains(t, output, "error: command not found: bogus")
	assert.Contains(t, output, "bye")
	assert.NotContains(t, output, "a.txt\n", "ls after exit must not run")

	out.Reset()
	require.NoError(t, sh.Run(context.Background(), strings.NewReader("ls\n"), out), "end of input stops the shell")
	assert.Contains(t, out.String(), "a.txt")
}

func TestShell_OnEvent(t *testing.T) {
	sh := New()
	sh.OnEvent(event.NewEvent(&event.Context{PID: 1, EventType: process.EventFaulted}, process.Status{}))

	reader, writer := io.Pipe()
	out := &bytes.Buffer{}
	done := make(chan error)
	go func() { done <- sh.Run(context.Background(), reader, out) }()
	assert.Eventually(t, func() bool { return sh.out.Load() != nil }, time.Second, time.Millisecond)
	sh.OnEvent(event.NewEvent(&event.Context{PID: 3, Name: "bad", EventType: process.EventFaulted, Message: "boom"}, process.Status{}))
	sh.OnEvent(event.NewEvent(&event.Context{PID: 4, Name: "big", EventType: process.EventOutOfMemory, Message: "no frames left"}, process.Status{}))
	sh.OnEvent(event.NewEvent(&event.Context{PID: 5, EventType: process.EventCreated}, process.Status{}))
	require.NoError(t, writer.Close())
	require.NoError(t, <-done)

	assert.Contains(t, out.String(), "[process 3 - bad] fault: boom")
	assert.Contains(t, out.String(), "[process 4 - big] no frames: no frames left")
	assert.NotContains(t, out.String(), "process 5")
}

func TestShell_StatsCPUTime(t *testing.T) {
	ctx := context.Background()
	sh, processes, _ := newShell(t, "mem://localhost/shell/cpu.txt")
	for i, cpu := range []time.Duration{10 * time.Millisecond, 30 * time.Millisecond, 50 * time.Millisecond} {
		aProcess, err := processes.RunProgram(ctx, program.Echo("p", 1))
		require.NoError(t, err)
		aProcess.AddCPUTime(cpu)
		if i < 2 {
			processes.TerminateProcess(ctx, aProcess.PID)
		}
	}

	out := &bytes.Buffer{}
	require.NoError(t, sh.Execute(ctx, "stats", out))
	assert.Contains(t, out.String(), "cpu mean     : 20.0ms")
	assert.Contains(t, out.String(), "cpu median   : 20.0ms")
	assert.Contains(t, out.String(), "cpu max      : 30.0ms")
}
