// ABOUTME: Tests for the leveled logger
// ABOUTME: Validates level filtering, level parsing and output redirection

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// capture redirects output for the duration of the test. Tests using it
// touch global state and must not run in parallel.
func capture(t *testing.T, l slog.Level) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOut := SetOutput(&buf)
	prevLevel := GetLevel()
	SetLevel(l)
	t.Cleanup(func() {
		SetOutput(prevOut)
		SetLevel(prevLevel)
	})
	return &buf
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	buf := capture(t, LevelInfo)

	Debug("hidden %d", 1)
	Info("shown %d", 2)

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug line emitted at info level: %q", got)
	}
	if !strings.Contains(got, "[INFO] shown 2") {
		t.Errorf("info line missing: %q", got)
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	buf := capture(t, slog.Level(100))

	Warn("dropped")
	Error("render failed: %s", "EPIPE")

	got := buf.String()
	if strings.Contains(got, "dropped") {
		t.Errorf("warn emitted above its level: %q", got)
	}
	if !strings.Contains(got, "[ERROR] render failed: EPIPE") {
		t.Errorf("error line missing: %q", got)
	}
}

func TestAllLevels(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("debug: %d", 1)
	Info("info: %d", 2)
	Warn("warn: %d", 3)
	Error("error: %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	for i, tag := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"} {
		if !strings.Contains(lines[i], tag) {
			t.Errorf("line %d = %q, want tag %s", i, lines[i], tag)
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: " warn ", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
