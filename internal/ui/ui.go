// Released under an MIT license. See LICENSE.

// Package ui provides jsh's interactive command-line interface.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"jsh/internal/parse"
	"jsh/internal/system/config"
	"jsh/internal/system/history"
	"jsh/internal/system/job"
)

// Evaluate runs a single command line, used for both interactive input
// and -c invocations. Errors are reported on stderr; they never unwind
// the caller's loop.
func Evaluate(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	c, err := parse.Parse(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jsh: %v\n", err)

		return
	}
	defer c.Close()

	if len(c.Argv) == 0 {
		return
	}

	// Any command other than a repeated exit rearms the stopped-jobs
	// warning.
	if c.Argv[0] != "exit" {
		warned = false
	}

	if Builtin(c.Argv[0], c.Argv[1:]) {
		return
	}

	if err := job.Launch(c.Argv, c.Files, c.Line, c.Background); err != nil {
		fmt.Fprintf(os.Stderr, "jsh: %v\n", err)
	}
}

// Builtin dispatches name if it is a shell built-in and reports whether
// it was handled.
func Builtin(name string, args []string) bool {
	switch name {
	case "jobs":
		job.Jobs(os.Stdout)

	case "fg":
		if err := job.Fg(os.Stdout, args); err != nil {
			fmt.Fprintf(os.Stderr, "jsh: %v\n", err)
		}

	case "bg":
		if err := job.Bg(os.Stdout, args); err != nil {
			fmt.Fprintf(os.Stderr, "jsh: %v\n", err)
		}

	case "cd":
		dir := os.Getenv("HOME")
		if len(args) > 0 {
			dir = args[0]
		}

		if err := os.Chdir(dir); err != nil {
			fmt.Fprintf(os.Stderr, "jsh: cd: %v\n", err)
		}

	case "exit":
		exit()

	default:
		return false
	}

	return true
}

//nolint:gochecknoglobals
var (
	cleanup func()

	// exit asked for once already, with stopped jobs outstanding.
	warned bool
)

func exit() {
	if job.AnyStopped() && !warned {
		fmt.Fprintln(os.Stderr, "jsh: there are stopped jobs")

		warned = true

		return
	}

	if cleanup != nil {
		cleanup()
	}

	os.Exit(0)
}

// Run reads commands until end of input, polling for and printing
// completed-job notices before each prompt.
func Run(cfg *config.T) {
	cooked, err := liner.TerminalMode()
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}

	cli := liner.NewLiner()

	uncooked, err := liner.TerminalMode()
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}

	cli.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		history.SetPath(cfg.HistoryFile)
	}

	_ = history.Load(cli.ReadHistory)

	cleanup = func() {
		_ = history.Save(cli.WriteHistory)
		_ = cli.Close()
	}
	defer cleanup()

	for {
		for _, n := range job.Poll() {
			fmt.Print(n)
		}

		merr := uncooked.ApplyMode()
		if merr != nil {
			println(merr.Error())
			os.Exit(1)
		}

		line, err := cli.Prompt(cfg.Prompt)

		merr = cooked.ApplyMode()
		if merr != nil {
			println(merr.Error())
			os.Exit(1)
		}

		switch err {
		case nil:
			// Keep going.
		case liner.ErrPromptAborted:
			continue
		case io.EOF:
			os.Stdout.Write([]byte("exit\n"))

			return
		default:
			fmt.Fprintf(os.Stderr, "jsh: %v\n", err)

			return
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		cli.AppendHistory(line)

		Evaluate(line)
	}
}
