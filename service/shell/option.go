package shell

// Option configures the shell
type Option func(s *Shell)

// WithDisk sets the virtual disk
func WithDisk(disk Disk) Option {
	return func(s *Shell) {
		s.disk = disk
	}
}

// WithProcesses sets the process runtime
func WithProcesses(processes Processes) Option {
	return func(s *Shell) {
		s.processes = processes
	}
}

// WithPrograms sets the program loader used by exec
func WithPrograms(programs Programs) Option {
	return func(s *Shell) {
		s.programs = programs
	}
}

// WithMemory sets the memory manager inspected by memstat
func WithMemory(memory Memory) Option {
	return func(s *Shell) {
		s.memory = memory
	}
}

// WithStats sets the statistics source
func WithStats(stats Stats) Option {
	return func(s *Shell) {
		s.stats = stats
	}
}

// WithOps sets the instruction registry listed by ops
func WithOps(ops Ops) Option {
	return func(s *Shell) {
		s.ops = ops
	}
}

// WithPrompt sets the prompt
func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithCommands registers additional commands
func WithCommands(commands ...Command) Option {
	return func(s *Shell) {
		s.Register(commands...)
	}
}
