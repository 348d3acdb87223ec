// Released under an MIT license. See LICENSE.

// Package parse turns one line of input into a launchable command: an
// argv, a background flag, and the resolved stdin/stdout/stderr files.
// It is deliberately small; jsh has no pipelines, expansion, or control
// flow.
package parse

import (
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"

	"jsh/internal/adapted"
)

// Command is a parsed command line, ready for launch.
type Command struct {
	Argv       []string
	Line       string // The line as typed, kept for job bookkeeping.
	Background bool
	Files      []*os.File // stdin, stdout, stderr.

	opened []*os.File
}

// Close releases any files opened for redirections. The launcher's child
// holds its own descriptors by then.
func (c *Command) Close() {
	for _, f := range c.opened {
		_ = f.Close()
	}

	c.opened = nil
}

// Parse splits line into words, strips a trailing &, applies simple
// < > >> 2> redirections, and glob-expands the remaining words.
func Parse(line string) (*Command, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}

	c := &Command{
		Line:  strings.TrimSpace(line),
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}

	if n := len(words); n > 0 && words[n-1] == "&" {
		c.Background = true
		words = words[:n-1]
	}

	words, err = c.redirect(words)
	if err != nil {
		c.Close()

		return nil, err
	}

	for _, w := range words {
		m, err := adapted.Glob(w)
		if err != nil || len(m) == 0 {
			// An unmatched or malformed pattern is passed through
			// unchanged, the way most shells behave by default.
			c.Argv = append(c.Argv, w)

			continue
		}

		c.Argv = append(c.Argv, m...)
	}

	return c, nil
}

type redirection struct {
	fd     int
	append bool
	read   bool
}

//nolint:gochecknoglobals
var redirections = map[string]redirection{
	"<":   {fd: 0, read: true},
	">":   {fd: 1},
	">>":  {fd: 1, append: true},
	"2>":  {fd: 2},
	"2>>": {fd: 2, append: true},
}

// redirect consumes redirection operators and their targets from words,
// opening files into c, and returns the remaining words. Both the split
// form ("> file") and the attached form (">file") are accepted.
func (c *Command) redirect(words []string) ([]string, error) {
	out := words[:0]

	for i := 0; i < len(words); i++ {
		w := words[i]

		op, target := splitRedirection(w)
		if op == "" {
			out = append(out, w)

			continue
		}

		if target == "" {
			i++
			if i >= len(words) {
				return nil, fmt.Errorf("syntax error: %s: missing target", op)
			}

			target = words[i]
		}

		r := redirections[op]

		f, err := open(target, r)
		if err != nil {
			return nil, err
		}

		c.opened = append(c.opened, f)
		c.Files[r.fd] = f
	}

	return out, nil
}

func open(target string, r redirection) (*os.File, error) {
	if r.read {
		return os.Open(target)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if r.append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	return os.OpenFile(target, flags, 0o666)
}

// splitRedirection recognizes a word that starts with a redirection
// operator, returning the operator and any attached target.
func splitRedirection(w string) (op, target string) {
	for _, p := range []string{"2>>", "2>", ">>", "<", ">"} {
		if strings.HasPrefix(w, p) {
			return p, w[len(p):]
		}
	}

	return "", ""
}
