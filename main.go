/*
Jsh is a small Unix shell built around job control. Commands run as jobs
in their own process groups; jobs can be suspended, resumed in the
foreground or background, and listed:

	$ sleep 100 &
	[1] 12345
	$ jobs
	[1]+  Running                 sleep 100 &
	$ fg
	sleep 100 &
	^Z
	[1]+  Stopped                 sleep 100 &
	$ bg
	[1]+ sleep 100 &

Jsh is released under an MIT-style license.
*/
package main

import (
	"bufio"
	"fmt"
	"os"

	"jsh/internal/system/config"
	"jsh/internal/system/job"
	"jsh/internal/system/options"
	"jsh/internal/system/process"
	"jsh/internal/system/trace"
	"jsh/internal/ui"
)

func main() {
	options.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "jsh: %v\n", err)
	}

	if err := trace.Init(cfg.Trace.Level, cfg.Trace.File); err != nil {
		fmt.Fprintf(os.Stderr, "jsh: %v\n", err)
	}

	if options.Monitor() {
		// Without a foreground group of its own and a saved terminal
		// mode the shell cannot arbitrate the terminal; give up
		// rather than run with broken job control.
		if err := process.BecomeForegroundGroup(); err != nil {
			fmt.Fprintf(os.Stderr, "jsh: %v\n", err)
			os.Exit(1)
		}

		if err := process.SaveMode(); err != nil {
			fmt.Fprintf(os.Stderr, "jsh: %v\n", err)
			os.Exit(1)
		}
	}

	job.Monitor()

	if command := options.Command(); command != "" {
		ui.Evaluate(command)

		return
	}

	if options.Interactive() {
		ui.Run(cfg)

		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		ui.Evaluate(scanner.Text())
	}
}
