package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetupLevels(t *testing.T) {
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })

	Setup(true)
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}
	Setup(false)
	if log.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", log.GetLevel())
	}
}

func TestNewWithWriterUsesPrefixAndGlobalLevel(t *testing.T) {
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })
	log.SetLevel(log.WarnLevel)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "server")
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "server") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q, want prefixed warning", out)
	}
}
