package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// fileNameForEnv inserts the environment before the extension: ("oauthClient", "test", "json")
// becomes "oauthClient.test.json"
func fileNameForEnv(base, env, ext string) string {
	if env == "" {
		return base + "." + ext
	}
	return base + "." + env + "." + ext
}

// findFile searches for name in the current directory, then in the user's home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
