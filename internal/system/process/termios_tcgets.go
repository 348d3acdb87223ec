// Released under an MIT license. See LICENSE.

// +build aix linux solaris

package process

import "golang.org/x/sys/unix"

const (
	getTermios = unix.TCGETS
	setTermios = unix.TCSETS
)
