// ABOUTME: Settings loading with global + project YAML config merge
// ABOUTME: Zero values mean "unset"; Defaults fills whatever no layer provided

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/termgfx/pkg/gfx"
)

// Settings holds the merged configuration.
type Settings struct {
	FPS        int    `yaml:"fps,omitempty"`
	Background string `yaml:"background,omitempty"`
	Glyph      string `yaml:"glyph,omitempty"`
	Trace      string `yaml:"trace,omitempty"`
	LogFile    string `yaml:"log_file,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		FPS:        30,
		Background: "#000000",
		Glyph:      gfx.DefaultGlyph,
		LogLevel:   "info",
	}
}

// Load reads and merges global and project-local settings over the
// defaults. Project settings override global settings. Missing files are
// not an error.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	defaults := Defaults()
	merged := merge(merge(&defaults, global), project)
	ResolveEnvVars(merged)
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Merge overlays the non-zero fields of over onto s and returns the result.
func (s *Settings) Merge(over *Settings) *Settings {
	return merge(s, over)
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		result := *global
		return &result
	}

	result := *global

	if project.FPS != 0 {
		result.FPS = project.FPS
	}
	if project.Background != "" {
		result.Background = project.Background
	}
	if project.Glyph != "" {
		result.Glyph = project.Glyph
	}
	if project.Trace != "" {
		result.Trace = project.Trace
	}
	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}

	return &result
}

// Validate checks the settings can start an app.
func (s *Settings) Validate() error {
	if s.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d: %w", s.FPS, gfx.ErrInvalidConfig)
	}
	if _, err := gfx.ParseHex(s.Background); err != nil {
		return fmt.Errorf("background: %w: %w", gfx.ErrInvalidConfig, err)
	}
	if s.Glyph == "" {
		return fmt.Errorf("glyph must not be empty: %w", gfx.ErrInvalidConfig)
	}
	return nil
}

// AppConfig converts validated settings into the runtime configuration.
func (s *Settings) AppConfig() (gfx.Config, error) {
	if err := s.Validate(); err != nil {
		return gfx.Config{}, err
	}
	bg, _ := gfx.ParseHex(s.Background)
	return gfx.Config{
		FPS:        s.FPS,
		Background: bg,
		Glyph:      s.Glyph,
	}, nil
}
