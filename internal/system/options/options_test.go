package options

import (
	"os"
	"testing"
)

func parseArgs(t *testing.T, args ...string) {
	t.Helper()

	saved := os.Args
	t.Cleanup(func() { os.Args = saved })

	os.Args = append([]string{"jsh"}, args...)

	command = ""
	interactive = false
	monitor = false

	Parse()
}

func TestParseCommand(t *testing.T) {
	parseArgs(t, "-c", "echo hi")

	if Command() != "echo hi" {
		t.Errorf("expected command, got %q", Command())
	}

	// Test stdin is not a TTY; -c also disables interactive mode.
	if Interactive() || Monitor() {
		t.Error("expected non-interactive, non-monitor mode")
	}
}

func TestParseInvertMonitor(t *testing.T) {
	parseArgs(t, "-m", "-c", "echo hi")

	if !Monitor() {
		t.Error("expected -m to invert job control mode")
	}
}

func TestParseInvertInteractive(t *testing.T) {
	parseArgs(t, "-i")

	// Stdin is not a TTY during tests, so -i turns interactive on.
	if !Interactive() {
		t.Error("expected -i to invert interactive mode")
	}
}
