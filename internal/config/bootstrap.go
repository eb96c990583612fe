package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUserConfig makes sure dataDir holds an editable config file, seeding
// it from the packaged default on first run. It returns the user config path.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat user config: %w", err)
	}

	def, err := os.ReadFile(defaultPath)
	if err != nil {
		return "", fmt.Errorf("read default config %s: %w", defaultPath, err)
	}
	if err := os.WriteFile(userPath, def, 0o644); err != nil {
		return "", fmt.Errorf("seed user config: %w", err)
	}
	return userPath, nil
}
