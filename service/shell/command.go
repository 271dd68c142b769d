package shell

// info holds the descriptive part shared by built-in commands
type info struct {
	name        string
	aliases     []string
	usage       string
	description string
}

func (i *info) Name() string        { return i.name }
func (i *info) Aliases() []string   { return i.aliases }
func (i *info) Usage() string       { return i.usage }
func (i *info) Description() string { return i.description }

func builtins() []Command {
	return []Command{
		NewHelpCommand(),
		NewLsCommand(),
		NewCatCommand(),
		NewWriteCommand(),
		NewRmCommand(),
		NewFormatCommand(),
		NewRunCommand(),
		NewExecCommand(),
		NewPsCommand(),
		NewKillCommand(),
		NewMemstatCommand(),
		NewStatsCommand(),
		NewOpsCommand(),
		NewExitCommand(),
	}
}
