// Package history stores the shell's command history between sessions.
package history

import (
	"io"
	"os"
)

//nolint:gochecknoglobals
var location string

// Load reads saved history with read, typically liner's ReadHistory.
// A missing history file is not an error; there is nothing to load.
func Load(read func(r io.Reader) (int, error)) error {
	f, err := file(os.Open)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}

	_, err = read(f)
	if err != nil {
		return err
	}

	return f.Close()
}

// Save writes the current history with write, typically liner's WriteHistory.
func Save(write func(w io.Writer) (int, error)) error {
	f, err := file(os.Create)
	if err != nil {
		return err
	}

	_, err = write(f)
	if err != nil {
		return err
	}

	return f.Close()
}

// SetPath overrides the default history file location.
func SetPath(p string) {
	location = p
}
