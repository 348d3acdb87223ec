// Released under an MIT license. See LICENSE.

package job

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// notice formats one job-state line in the fixed-width layout users expect:
//
//	[1]+  Stopped                 sleep 100
func notice(id int, mark byte, status, line string) string {
	return fmt.Sprintf("[%d]%c  %-24s%s\n", id, mark, status, line)
}

//nolint:gochecknoglobals
var signalDescriptions = map[unix.Signal]string{
	unix.SIGHUP:  "Hangup",
	unix.SIGINT:  "Interrupt",
	unix.SIGQUIT: "Quit",
	unix.SIGILL:  "Illegal instruction",
	unix.SIGTRAP: "Trace/breakpoint trap",
	unix.SIGABRT: "Aborted",
	unix.SIGBUS:  "Bus error",
	unix.SIGFPE:  "Floating point exception",
	unix.SIGKILL: "Killed",
	unix.SIGSEGV: "Segmentation fault",
	unix.SIGUSR1: "User defined signal 1",
	unix.SIGUSR2: "User defined signal 2",
	unix.SIGPIPE: "Broken pipe",
	unix.SIGALRM: "Alarm clock",
	unix.SIGTERM: "Terminated",
}

// description names how a job finished: Done for a clean exit, Exit n for
// a nonzero one, and the conventional signal description otherwise.
func description(status unix.WaitStatus) string {
	switch {
	case status.Exited():
		if code := status.ExitStatus(); code != 0 {
			return fmt.Sprintf("Exit %d", code)
		}

	case status.Signaled():
		sig := status.Signal()

		d, ok := signalDescriptions[sig]
		if !ok {
			d = fmt.Sprintf("Signal %d", int(sig))
		}

		if status.CoreDump() {
			d += " (core dumped)"
		}

		return d
	}

	return "Done"
}
