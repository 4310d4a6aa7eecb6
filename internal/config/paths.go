package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// EnvDir overrides the config directory when set.
const EnvDir = "NUCLEICTL_CONFIG_DIR"

// Dir returns the nucleictl config directory under the user config base.
// On Linux this is usually $XDG_CONFIG_HOME/nucleictl; falls back to HOME
// when UserConfigDir is unavailable.
func Dir() (string, error) {
	if d := strings.TrimSpace(os.Getenv(EnvDir)); d != "" {
		return d, nil
	}
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "nucleictl"), nil
}

// File returns name joined onto Dir.
func File(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Path is the location of config.yaml.
func Path() (string, error) { return File("config.yaml") }

// LogPath is where the TUI writes its log.
func LogPath() (string, error) { return File("nucleictl.log") }

// TargetsPath stores the target list between sessions.
func TargetsPath() (string, error) { return File("targets.json") }
