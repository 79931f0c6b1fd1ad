// ABOUTME: Tests for config loading, merging, validation and env expansion
// ABOUTME: Uses temp directories for isolated file-based tests

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mauromedda/termgfx/pkg/gfx"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{FPS: 30, Background: "#101010"}
	project := &Settings{FPS: 60}

	result := merge(global, project)

	if result.FPS != 60 {
		t.Errorf("FPS = %d, want 60", result.FPS)
	}
	if result.Background != "#101010" {
		t.Errorf("Background = %q, want %q", result.Background, "#101010")
	}
	if global.FPS != 30 {
		t.Error("merge mutated its input")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	result := merge(nil, nil)
	if result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestMerge_Precedence(t *testing.T) {
	t.Parallel()

	defaults := Defaults()
	global := &Settings{FPS: 20, Glyph: "##"}
	project := &Settings{Glyph: "[]"}
	flags := &Settings{FPS: 5}

	got := defaults.Merge(global).Merge(project).Merge(flags)

	if got.FPS != 5 {
		t.Errorf("FPS = %d, want flag value 5", got.FPS)
	}
	if got.Glyph != "[]" {
		t.Errorf("Glyph = %q, want project value", got.Glyph)
	}
	if got.Background != "#000000" {
		t.Errorf("Background = %q, want default", got.Background)
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile("/nonexistent/path/config.yaml")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist error, got %v", err)
	}
	if s == nil {
		t.Error("expected non-nil default settings")
	}
}

func TestLoadFile_ValidYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "fps: 12\nbackground: \"#ff8800\"\nglyph: \"[]\"\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := loadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.FPS != 12 || s.Background != "#ff8800" || s.Glyph != "[]" || s.LogLevel != "debug" {
		t.Errorf("loaded %+v", s)
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("fps: [not an int"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_ProjectFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TRACE_DIR", "/tmp/traces")

	root := t.TempDir()
	data := "fps: 24\ntrace: ${TRACE_DIR}/run.json\n"
	if err := os.WriteFile(ProjectConfigFile(root), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if s.FPS != 24 {
		t.Errorf("FPS = %d, want 24", s.FPS)
	}
	if s.Trace != "/tmp/traces/run.json" {
		t.Errorf("Trace = %q, want env-expanded path", s.Trace)
	}
	if s.Glyph != gfx.DefaultGlyph {
		t.Errorf("Glyph = %q, want default", s.Glyph)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Settings) {}},
		{name: "zero fps", mutate: func(s *Settings) { s.FPS = 0 }, wantErr: true},
		{name: "negative fps", mutate: func(s *Settings) { s.FPS = -3 }, wantErr: true},
		{name: "bad background", mutate: func(s *Settings) { s.Background = "teal" }, wantErr: true},
		{name: "short background", mutate: func(s *Settings) { s.Background = "#0f0" }},
		{name: "empty glyph", mutate: func(s *Settings) { s.Glyph = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Defaults()
			tt.mutate(&s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppConfig(t *testing.T) {
	t.Parallel()

	s := Defaults()
	s.FPS = 10
	s.Background = "#0a0b0c"

	cfg, err := s.AppConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 10 || cfg.Background != gfx.RGB(10, 11, 12) || cfg.Glyph != gfx.DefaultGlyph {
		t.Errorf("AppConfig() = %+v", cfg)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TERMGFX_TEST_VAR", "value")

	if got := expandEnv("${TERMGFX_TEST_VAR}/x"); got != "value/x" {
		t.Errorf("expandEnv = %q", got)
	}
	if got := expandEnv("${TERMGFX_UNSET_VAR}"); got != "" {
		t.Errorf("unset var expanded to %q", got)
	}
}
