package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvSource names the environment variable that overrides the source location.
const EnvSource = "DRAWSTAT_SOURCE"

// EnvArchive names the environment variable that overrides the archive path.
const EnvArchive = "DRAWSTAT_ARCHIVE"

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides file settings with DRAWSTAT_* environment variables.
func ApplyEnv(cfg *FileConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvSource)); v != "" {
		cfg.Source.Location = &v
	}
	if v := strings.TrimSpace(os.Getenv(EnvArchive)); v != "" {
		cfg.Source.Archive = &v
	}
}
