// Released under an MIT license. See LICENSE.

// Package job implements job control: tracking the process groups the
// shell has launched, reaping their state changes, and arbitrating the
// controlling terminal between those groups and the shell itself.
package job

import "golang.org/x/sys/unix"

// State is a job's lifecycle state. Running and Stopped alternate freely;
// Done is terminal and a Done job is removed once reported.
type State int

const (
	Running State = iota
	Stopped
	Done
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Done:
		return "Done"
	}

	return "Running"
}

// T is one tracked job: a command launched by the user, all of whose
// processes share one process group.
type T struct {
	ID         int
	Group      int    // Process group ID. Set at launch, never changes.
	Line       string // Command line as typed, for jobs output and notices.
	State      State
	Background bool

	procs   map[int]bool    // Live pids; the value is true while that pid is stopped.
	status  unix.WaitStatus // Most recent exit/kill status from wait4.
	mode    *unix.Termios   // Terminal attributes saved when stopped in the foreground.
	waiters []chan result
}

// result is what a foreground waiter learns when its job leaves the
// foreground: either the job stopped, or it finished, with any notice
// text the waiter should print (empty for a clean exit).
type result struct {
	stopped bool
	notice  string
}

func (j *T) allStopped() bool {
	for _, s := range j.procs {
		if !s {
			return false
		}
	}

	return len(j.procs) > 0
}

func (j *T) setRunning() {
	j.State = Running

	for pid := range j.procs {
		j.procs[pid] = false
	}
}

// tell wakes every waiter registered on j and forgets them. A job that
// stops and is later foregrounded again collects a fresh waiter.
func (j *T) tell(r result) {
	for _, ch := range j.waiters {
		ch <- r
	}

	j.waiters = nil
}

func (j *T) wait() chan result {
	ch := make(chan result, 1)

	j.waiters = append(j.waiters, ch)

	return ch
}
