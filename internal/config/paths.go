// ABOUTME: Standard filesystem paths for termgfx configuration
// ABOUTME: Resolves the user config dir for global and ./termgfx.yaml for project-local settings

package config

import (
	"os"
	"path/filepath"
)

const (
	appDirName      = "termgfx"
	configFileName  = "config.yaml"
	projectFileName = "termgfx.yaml"
)

// GlobalDir returns the user-global config directory
// (e.g. ~/.config/termgfx on Linux).
func GlobalDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(dir, appDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(projectRoot, projectFileName)
}
