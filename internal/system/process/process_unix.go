// Released under an MIT license. See LICENSE.

// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package process

import (
	"os"

	"golang.org/x/sys/unix"
)

//nolint:gochecknoglobals
var (
	id       = unix.Getpid()
	group, _ = unix.Getpgid(id)
	terminal = int(os.Stdin.Fd())

	saved *unix.Termios
)

// BecomeForegroundGroup performs the Unix incantations necessary to put the
// current process in the foreground. A shell launched in the background waits
// here, stopped by SIGTTIN, until the user brings it forward.
func BecomeForegroundGroup() (err error) {
	for group != ForegroundGroup() {
		err = unix.Kill(-group, unix.SIGTTIN)
		if err != nil {
			return
		}

		group, err = unix.Getpgid(id)
		if err != nil {
			return
		}
	}

	if id != group {
		err = unix.Setpgid(id, id)
		if err != nil {
			return
		}

		group = id
	}

	SetForegroundGroup(group)

	return
}

// Continue sends a SIGCONT to the process group g.
func Continue(g int) {
	_ = unix.Kill(-g, unix.SIGCONT)
}

// ForegroundGroup returns the terminal's current foreground group ID.
func ForegroundGroup() int {
	g, err := unix.IoctlGetInt(terminal, unix.TIOCGPGRP)
	if err != nil {
		return 0
	}

	return g
}

// Group returns the group ID for the current process.
func Group() int {
	return group
}

// Interrupt sends a SIGINT to the process group g.
func Interrupt(g int) {
	_ = unix.Kill(-g, unix.SIGINT)
}

// Mode returns the terminal's current line-discipline attributes.
func Mode() (*unix.Termios, error) {
	return unix.IoctlGetTermios(terminal, getTermios)
}

// RestoreMode reapplies the attributes captured by SaveMode. A job that was
// stopped after changing the line discipline must not leave the shell's own
// prompt unreadable.
func RestoreMode() {
	if saved == nil {
		return
	}

	_ = unix.IoctlSetTermios(terminal, setTermios, saved)
}

// SaveMode captures the terminal attributes in effect for the shell itself.
func SaveMode() error {
	mode, err := Mode()
	if err == nil {
		saved = mode
	}

	return err
}

// SetForegroundGroup sets the terminal's foreground group to g.
func SetForegroundGroup(g int) {
	err := unix.IoctlSetPointerInt(terminal, unix.TIOCSPGRP, g)
	if err != nil {
		println(err.Error())
	}
}

// SetMode applies the line-discipline attributes mode to the terminal.
func SetMode(mode *unix.Termios) error {
	return unix.IoctlSetTermios(terminal, setTermios, mode)
}

// Stop sends a SIGSTOP to the process group g.
func Stop(g int) {
	_ = unix.Kill(-g, unix.SIGSTOP)
}

// SysProcAttr returns the appropriate *unix.SysProcAttr given the group ID
// and if this is for the foreground group.
func SysProcAttr(foreground bool, group int) *unix.SysProcAttr {
	sys := &unix.SysProcAttr{Foreground: foreground, Setpgid: true}

	if group == 0 {
		sys.Ctty = terminal
	} else {
		sys.Pgid = group
	}

	return sys
}
