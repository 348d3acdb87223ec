// Released under an MIT license. See LICENSE.

// WCONTINUED is missing on NetBSD.

// +build aix darwin dragonfly freebsd linux openbsd solaris

package job

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"jsh/internal/adapted"
	"jsh/internal/system/options"
	"jsh/internal/system/process"
	"jsh/internal/system/trace"
)

//nolint:gochecknoglobals
var (
	requestq chan func()
	signalq  chan os.Signal

	jobs = newTable()

	// foreground is the job currently granted the controlling terminal,
	// nil when the shell itself holds it.
	foreground *T

	// notices queued for the next prompt iteration.
	notices []string

	log zerolog.Logger
)

// Monitor installs the shell's signal plumbing and starts the goroutine
// that owns all job state. Every job table mutation happens on that
// goroutine: requests and signal notifications are consumed by the same
// select loop, so a child state change can never interleave with an
// update in progress.
func Monitor() {
	signals := []os.Signal{unix.SIGCHLD}

	if options.Monitor() {
		signal.Ignore(unix.SIGQUIT, unix.SIGTTIN, unix.SIGTTOU)

		signals = append(signals, unix.SIGINT, unix.SIGTSTP)
	}

	log = trace.Logger("job")

	requestq = make(chan func(), 1)
	signalq = make(chan os.Signal, len(signals)+1)

	signal.Notify(signalq, signals...)

	go monitor()
}

func monitor() {
	for {
		select {
		case f := <-requestq:
			f()

		// While a foreground job holds the terminal the OS delivers
		// Ctrl-C and Ctrl-Z to that job's group, not to the shell.
		// SIGINT/SIGTSTP reach the shell only when aimed at it
		// directly; they are forwarded to the foreground job, and at
		// the prompt a stray Ctrl-C must not kill the shell.
		case s := <-signalq:
			switch s {
			case unix.SIGCHLD:
				reap()

			case unix.SIGINT:
				if foreground != nil {
					process.Interrupt(foreground.Group)
				} else {
					log.Debug().Str("signal", s.String()).Msg("ignored at prompt")
				}

			case unix.SIGTSTP:
				if foreground != nil {
					process.Stop(foreground.Group)
				} else {
					log.Debug().Str("signal", s.String()).Msg("ignored at prompt")
				}
			}
		}
	}
}

// Launch starts argv as a new job in its own process group. files is the
// stdin/stdout/stderr triple, redirections already applied; line is the
// command as typed. A foreground launch hands the job the terminal and
// blocks until the job stops or finishes. A background launch announces
// the job and returns to the caller immediately.
func Launch(argv []string, files []*os.File, line string, background bool) error {
	if len(argv) == 0 {
		return nil
	}

	path, executable, err := adapted.LookPath(argv[0], os.Getenv("PATH"))
	if err != nil {
		return err
	}

	if !executable {
		return fmt.Errorf("%s: is a directory", argv[0])
	}

	wd, _ := os.Getwd()

	fg := options.Monitor() && !background

	attr := &os.ProcAttr{
		Dir:   wd,
		Env:   os.Environ(),
		Files: files,
		Sys:   process.SysProcAttr(fg, 0),
	}

	type launched struct {
		ch  chan result
		err error
	}

	resq := make(chan launched)

	requestq <- func() {
		reap()

		p, err := os.StartProcess(path, argv, attr)
		if err != nil {
			// The launch failed; no job was created.
			resq <- launched{err: err}

			return
		}

		// Setpgid makes the child the leader of a fresh group, so its
		// pid is the job's pgid. The table entry exists before the
		// next reap pass can possibly run.
		j := jobs.add(p.Pid, line, background)
		jobs.adopt(j, p.Pid)

		log.Info().
			Int("job", j.ID).
			Int("pgid", j.Group).
			Bool("background", background).
			Str("line", line).
			Msg("launched")

		if background {
			fmt.Printf("[%d] %d\n", j.ID, p.Pid)

			resq <- launched{}

			return
		}

		if fg {
			foreground = j
		}

		resq <- launched{ch: j.wait()}
	}

	r := <-resq
	if r.err != nil {
		return r.err
	}

	if r.ch != nil {
		waitForeground(r.ch)
	}

	return nil
}

// Fg is the fg built-in. It moves the target job into the foreground,
// continuing it if stopped, and blocks until the job stops again or
// finishes.
func Fg(w io.Writer, args []string) error {
	type target struct {
		ch  chan result
		err error
	}

	resq := make(chan target)

	requestq <- func() {
		j, err := resolve("fg", args)
		if err != nil {
			resq <- target{err: err}

			return
		}

		fmt.Fprintf(w, "%s\n", j.Line)

		if options.Monitor() {
			if j.mode != nil {
				_ = process.SetMode(j.mode)
				j.mode = nil
			}

			process.SetForegroundGroup(j.Group)

			foreground = j
		}

		if j.State == Stopped {
			j.setRunning()
			process.Continue(j.Group)
		}

		j.Background = false

		log.Info().Int("job", j.ID).Msg("fg")

		resq <- target{ch: j.wait()}
	}

	r := <-resq
	if r.err != nil {
		return r.err
	}

	waitForeground(r.ch)

	return nil
}

// Bg is the bg built-in. It resumes a stopped job without granting it the
// terminal. It never blocks.
func Bg(w io.Writer, args []string) error {
	errq := make(chan error)

	requestq <- func() {
		j, err := resolve("bg", args)
		if err == nil && j.State == Running {
			err = fmt.Errorf("bg: job %d already in background", j.ID)
		}

		if err != nil {
			errq <- err

			return
		}

		j.setRunning()
		j.Background = true

		process.Continue(j.Group)

		suffix := " &"
		if strings.HasSuffix(strings.TrimSpace(j.Line), "&") {
			suffix = ""
		}

		fmt.Fprintf(w, "[%d]%c %s%s\n", j.ID, jobs.marker(j), j.Line, suffix)

		log.Info().Int("job", j.ID).Msg("bg")

		errq <- nil
	}

	return <-errq
}

// Jobs prints every tracked job, ordered by job id.
func Jobs(w io.Writer) {
	done := make(chan struct{})

	requestq <- func() {
		for _, j := range jobs.list() {
			fmt.Fprint(w, notice(j.ID, jobs.marker(j), j.State.String(), j.Line))
		}

		close(done)
	}

	<-done
}

// Poll reaps any pending child state changes and returns the queued
// completion notices. The prompt loop calls it once per iteration, before
// reading input.
func Poll() []string {
	r := make(chan []string)

	requestq <- func() {
		reap()

		ns := notices
		notices = nil

		r <- ns
	}

	return <-r
}

// AnyStopped reports whether any tracked job is currently stopped. The
// exit built-in warns before abandoning stopped jobs.
func AnyStopped() bool {
	r := make(chan bool)

	requestq <- func() {
		stopped := false

		for _, j := range jobs.list() {
			if j.State == Stopped {
				stopped = true

				break
			}
		}

		r <- stopped
	}

	return <-r
}

// finished handles a job whose last process has exited or been killed.
// Background completions are reported at the next prompt; a job someone
// is waiting on synchronously is reported by its waiter, which is handed
// the notice to print. Waiters exist whether or not the shell controls a
// terminal; the foreground variable only tracks terminal ownership.
func finished(j *T) {
	desc := description(j.status)

	log.Info().Int("job", j.ID).Str("status", desc).Msg("finished")

	if j == foreground {
		reclaim(j)
	}

	if len(j.waiters) != 0 {
		n := ""
		if j.status.Signaled() {
			n = notice(j.ID, jobs.marker(j), desc, j.Line)
		}

		jobs.remove(j.ID)
		j.tell(result{notice: n})

		return
	}

	notices = append(notices, notice(j.ID, jobs.marker(j), desc, j.Line))
	jobs.remove(j.ID)
}

// reap drains every child state change reportable without blocking and
// applies each to the job table. It only ever runs on the monitor
// goroutine.
func reap() {
	var status unix.WaitStatus

	opts := unix.WNOHANG | unix.WUNTRACED | unix.WCONTINUED

	for {
		pid, err := unix.Wait4(-1, &status, opts, nil)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			// ECHILD just means the drain is complete.
			if err != unix.ECHILD {
				log.Error().Err(err).Msg("wait4")
			}

			break
		}

		if pid == 0 {
			break
		}

		j, tr := jobs.apply(pid, status)
		if j == nil {
			// Late report for a process already forgotten, or one
			// that was never ours to track.
			log.Debug().Int("pid", pid).Msg("unknown pid")

			continue
		}

		switch tr {
		case transitionStopped:
			suspended(j)

		case transitionContinued:
			log.Info().Int("job", j.ID).Msg("continued")

		case transitionDone:
			finished(j)
		}
	}
}

// reclaim returns the terminal to the shell after j held it. The job may
// have changed the line discipline; its mode is remembered for fg and the
// shell's own mode is restored so the prompt stays readable.
func reclaim(j *T) {
	if mode, err := process.Mode(); err == nil {
		j.mode = mode
	}

	process.RestoreMode()
	process.SetForegroundGroup(process.Group())

	foreground = nil
}

// resolve picks the job a built-in operates on: an explicit id, with or
// without a leading %, or the current job when no argument is given.
func resolve(builtin string, args []string) (*T, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("%s: usage: %s [job]", builtin, builtin)
	}

	if len(args) == 0 {
		j := jobs.mostRecent()
		if j == nil {
			return nil, fmt.Errorf("%s: current: no such job", builtin)
		}

		return j, nil
	}

	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "%"))
	if err != nil {
		return nil, fmt.Errorf("%s: usage: %s [job]", builtin, builtin)
	}

	j := jobs.byID(id)
	if j == nil {
		return nil, fmt.Errorf("%s: %s: no such job", builtin, args[0])
	}

	return j, nil
}

// suspended handles a job whose processes have all stopped. Stopping the
// foreground job gives the terminal back to the shell before anything is
// printed or any waiter is woken.
func suspended(j *T) {
	log.Info().Int("job", j.ID).Msg("stopped")

	if j == foreground {
		reclaim(j)
	}

	if len(j.waiters) != 0 {
		fmt.Print(notice(j.ID, jobs.marker(j), "Stopped", j.Line))
		j.tell(result{stopped: true})

		return
	}

	notices = append(notices, notice(j.ID, jobs.marker(j), "Stopped", j.Line))
}

// waitForeground blocks until the reaper observes the foreground job stop
// or finish. Terminal reclamation happens on the monitor goroutine before
// the waiter is woken, so by the time this returns the shell can read
// input again.
func waitForeground(ch chan result) {
	r := <-ch

	if r.notice != "" {
		fmt.Print(r.notice)
	}
}
