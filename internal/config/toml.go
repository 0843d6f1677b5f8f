// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Source SourceConfig `toml:"source"`
	Report ReportConfig `toml:"report"`
	Game   GameConfig   `toml:"game"`
	Server ServerConfig `toml:"server"`
}

// SourceConfig maps data source settings.
type SourceConfig struct {
	Location *string `toml:"location"`
	Archive  *string `toml:"archive"`
}

// ReportConfig maps report settings.
type ReportConfig struct {
	Top     *int      `toml:"top"`
	Columns *[]string `toml:"columns"`
	Numbers *string   `toml:"numbers"`
	Last    *int      `toml:"last"`
	Since   *string   `toml:"since"`
}

// GameConfig maps the number pools used by quick picks.
type GameConfig struct {
	MainMax  *int     `toml:"main-max"`
	BonusMax *int     `toml:"bonus-max"`
	Weight   *float64 `toml:"weight"`
}

// ServerConfig maps API server settings.
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
