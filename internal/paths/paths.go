// Package paths resolves where the layout CLI keeps its configuration and
// the open design.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rotisserie/eris"
)

// AppName names the per-user configuration directory.
const AppName = "layout"

// DefaultDataDirName is the design directory created under the working
// directory when nothing else is configured.
const DefaultDataDirName = ".layout"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "LAYOUT_CONFIG_DIR"
	EnvDataDir   = "LAYOUT_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/layout (fallback ~/.config/layout)
// macOS:   ~/Library/Application Support/layout
// Windows: %APPDATA%/layout
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", eris.Wrap(err, "locating home directory")
		}
		return filepath.Join(home, ".config", AppName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", eris.Wrap(err, "locating user config directory")
	}
	return filepath.Join(dir, AppName), nil
}

// firstAbs returns the first non-empty candidate as an absolute path, or ""
// when all are empty.
func firstAbs(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			return "", eris.Wrapf(err, "resolving %s", c)
		}
		return abs, nil
	}
	return "", nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > LAYOUT_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	dir, err := firstAbs(flag, os.Getenv(EnvConfigDir))
	if err != nil || dir != "" {
		return dir, err
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the design directory following the precedence
// chain: flag > data_dir from config.yaml > LAYOUT_DATA_DIR > ./.layout.
func ResolveDataDir(flag, configValue string) (string, error) {
	dir, err := firstAbs(flag, configValue, os.Getenv(EnvDataDir))
	if err != nil || dir != "" {
		return dir, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", eris.Wrap(err, "locating working directory")
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}
