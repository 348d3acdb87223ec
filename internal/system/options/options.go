package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	command     string
	interactive bool
	monitor     bool
	usage       = `jsh

Usage:
  jsh [-im]
  jsh [-m] -c COMMAND
  jsh -h

Options:
  -c, --command=COMMAND  Run the specified command.
  -m, --monitor          Invert job control mode.
  -i, --interactive      Invert interactive mode.
  -h, --help             Display this help.

If jsh's stdin is a TTY, and jsh was not directed to run a single command,
interactive and job control features are enabled. Otherwise, these features
are disabled.
`
)

func Command() string {
	return command
}

func Interactive() bool {
	return interactive
}

func Monitor() bool {
	return monitor
}

func Parse() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	command, _ = opts.String("--command")

	if command == "" && isatty.IsTerminal(os.Stdin.Fd()) {
		interactive = true
		monitor = true
	}

	invertInteractive, _ := opts.Bool("--interactive")
	interactive = interactive != invertInteractive

	invertMonitor, _ := opts.Bool("--monitor")
	monitor = monitor != invertMonitor
}
