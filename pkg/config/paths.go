package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user application directory.
const AppName = "LLMMixer"

const (
	settingsFileName = "settings.json"
	envConfigPath    = "LLMMIXER_CONFIG"
)

// AppDir returns the per-user application-data directory, e.g.
// ~/.config/LLMMixer on Linux or %AppData%\LLMMixer on Windows. The directory
// is not created.
func AppDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath returns the settings document location. LLMMIXER_CONFIG
// overrides the per-user default.
func DefaultPath() (string, error) {
	if p := os.Getenv(envConfigPath); p != "" {
		return p, nil
	}
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileName), nil
}
