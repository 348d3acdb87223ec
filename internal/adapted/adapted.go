// Use of code in this package is governed by Go's BSD-style license.

// Package adapted contains functions adapted from Go's standard library.
//nolint:nakedret,nlreturn,wsl
package adapted

import (
	"os"
	"strings"
)

// LookPath finds name in path. It returns the resolved pathname, whether
// the result is an executable file (as opposed to a directory), and any
// error encountered.
func LookPath(name, path string) (string, bool, error) {
	cnf := "command not found"

	// Only bypass the path if file begins with / or ./ or ../
	prefix := name + "   "
	if prefix[0:1] == "/" || prefix[0:2] == "./" || prefix[0:3] == "../" {
		exe, err := findPath(name)
		if err == nil {
			return name, exe, nil
		}
		return "", false, &pathError{name, err.Error()}
	}
	if path == "" {
		return "", false, &pathError{name, cnf}
	}
	for _, dir := range strings.Split(path, ":") {
		pathname := dir + "/" + name
		if exe, err := findPath(pathname); err == nil {
			return pathname, exe, nil
		}
	}
	return "", false, &pathError{name, cnf}
}

type pathError struct {
	Path string
	Err  string
}

func (e *pathError) Error() string {
	return e.Path + ": " + e.Err
}

func findPath(file string) (bool, error) {
	d, err := os.Stat(file)
	if err != nil {
		return false, err
	}

	m := d.Mode()
	if m.IsDir() {
		return false, nil
	} else if m&0o111 != 0 {
		return true, nil
	}
	return false, os.ErrPermission
}
