// Use of code in this package is governed by Go's BSD-style license.

package adapted

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLookPath(t *testing.T) {
	dir := t.TempDir()

	exe := filepath.Join(dir, "tool")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "data"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	name, executable, err := LookPath("tool", dir)
	if err != nil || !executable || name != exe {
		t.Errorf("expected (%q, true), got (%q, %v, %v)", exe, name, executable, err)
	}

	name, executable, err = LookPath(exe, "")
	if err != nil || !executable || name != exe {
		t.Errorf("expected absolute path hit, got (%q, %v, %v)", name, executable, err)
	}

	name, executable, err = LookPath(dir, "")
	if err != nil || executable {
		t.Errorf("expected a directory to resolve as non-executable, got (%q, %v, %v)", name, executable, err)
	}

	_, _, err = LookPath("data", dir)
	if err == nil {
		t.Error("expected an error for a non-executable file")
	}

	_, _, err = LookPath("no-such-tool", dir)
	if err == nil || !strings.Contains(err.Error(), "command not found") {
		t.Errorf("expected command not found, got %v", err)
	}
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()

	for _, n := range []string{"a1", "a2", "b1"} {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	m, err := Glob(filepath.Join(dir, "a*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}

	expected := []string{filepath.Join(dir, "a1"), filepath.Join(dir, "a2")}
	if !reflect.DeepEqual(m, expected) {
		t.Errorf("expected %q, got %q", expected, m)
	}

	m, err = Glob(filepath.Join(dir, "b1"))
	if err != nil || len(m) != 1 {
		t.Errorf("expected a literal existing path to match itself, got (%q, %v)", m, err)
	}

	m, err = Glob(filepath.Join(dir, "nope"))
	if err != nil || m != nil {
		t.Errorf("expected a literal missing path to match nothing, got (%q, %v)", m, err)
	}
}
