// Package config resolves aeon3md settings from config files, .env files
// and the environment.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
)

// Dir returns the aeon3md configuration directory.
//
// Resolution:
//   - $AEON3MD_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/aeon3md if set (respects XDG on any platform)
//   - %AppData%/aeon3md on Windows
//   - ~/.config/aeon3md on macOS and Linux
func Dir() string {
	if dir := os.Getenv("AEON3MD_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "aeon3md")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "aeon3md")
		}
	}

	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "aeon3md")
}
