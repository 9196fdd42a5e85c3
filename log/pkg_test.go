package log

import (
	"bytes"
	"strings"
	"testing"
)

// swapDefault replaces the package-level logger for the duration of a
// test and restores it afterward.
func swapDefault(t *testing.T, logger Logger) {
	t.Helper()

	defaultMu.Lock()
	saved := defaultLog
	defaultLog = logger
	defaultMu.Unlock()

	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = saved
		defaultMu.Unlock()
	})
}

func TestPackageLevel_Logging(t *testing.T) {
	var buf bytes.Buffer
	swapDefault(t, Make(&buf, WithLevel(LevelTrace), WithPretty(false)))

	Trace("trace message")
	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	output := buf.String()
	for _, want := range []string{
		"trace message",
		"debug message",
		"info message",
		"warn message",
		"error message",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestPackageLevel_Config(t *testing.T) {
	var buf bytes.Buffer
	swapDefault(t, Make(&buf))

	Config(WithLevel(LevelError))

	Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged after raising level to error")
	}

	Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged after Config")
	}
}
