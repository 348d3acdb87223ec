// Released under an MIT license. See LICENSE.

package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisabledByDefault(t *testing.T) {
	if err := Init("", ""); err != nil {
		t.Fatalf("init: %v", err)
	}

	// A disabled logger must be safe to use.
	log := Logger("job")
	log.Info().Msg("dropped")
}

func TestLoggerTagsComponent(t *testing.T) {
	var b bytes.Buffer

	InitWriter("debug", &b)
	defer func() { _ = Init("", "") }()

	log := Logger("job")
	log.Info().Int("job", 1).Msg("launched")

	out := b.String()
	if !strings.Contains(out, `"component":"job"`) {
		t.Errorf("expected component tag, got %q", out)
	}

	if !strings.Contains(out, `"message":"launched"`) {
		t.Errorf("expected message, got %q", out)
	}
}

func TestInitWriterLevel(t *testing.T) {
	var b bytes.Buffer

	InitWriter("warn", &b)
	defer func() { _ = Init("", "") }()

	log := Logger("job")
	log.Debug().Msg("quiet")

	if b.Len() != 0 {
		t.Errorf("expected debug to be filtered at warn level, got %q", b.String())
	}
}

func TestInitBadLevelDefaultsToInfo(t *testing.T) {
	var b bytes.Buffer

	InitWriter("nonsense", &b)
	defer func() { _ = Init("", "") }()

	log := Logger("job")
	log.Info().Msg("kept")

	if b.Len() == 0 {
		t.Error("expected info to be logged after a bad level")
	}
}
