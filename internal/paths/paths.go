// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "ideavault"

// DefaultDataDirName is the CWD-relative data directory used when no
// override is active.
const DefaultDataDirName = ".ideavault-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "IDEAVAULT_CONFIG_DIR"
	EnvDataDir   = "IDEAVAULT_DATA_DIR"
)

// Seams for tests; point at the stdlib in normal operation.
var (
	homeDir       = os.UserHomeDir
	userConfigDir = os.UserConfigDir
)

// appDir resolves the app directory for one XDG base variable on linux,
// falling back to the given home-relative path. On macOS and Windows both
// config and data live under os.UserConfigDir (~/Library/Application
// Support and %APPDATA% respectively), so xdgVar is ignored there.
func appDir(xdgVar string, homeFallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if base := os.Getenv(xdgVar); base != "" {
		return filepath.Join(base, appDirName), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeFallback...)
	return filepath.Join(append(parts, appDirName)...), nil
}

// DefaultConfigDir returns the platform default configuration directory:
// $XDG_CONFIG_HOME/ideavault on linux (fallback ~/.config/ideavault).
func DefaultConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform default data directory:
// $XDG_DATA_HOME/ideavault on linux (fallback ~/.local/share/ideavault).
func DefaultDataDir() (string, error) {
	return appDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > IDEAVAULT_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > IDEAVAULT_DATA_DIR env > $(CWD)/.ideavault-db.
// The CWD-relative default keeps a vault local to the project directory it
// was initialized in.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
