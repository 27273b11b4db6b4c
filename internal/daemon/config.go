// Package daemon manages configuration and the long-running server
// lifecycle.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the engine and its surfaces.
type Config struct {
	Data          DataConfig         `toml:"data"`
	API           APIConfig          `toml:"api"`
	Engine        EngineConfig       `toml:"engine"`
	Notifications NotificationConfig `toml:"notifications"`
}

// DataConfig controls persistent storage.
type DataConfig struct {
	Dir        string `toml:"dir"`
	MaxBackups int    `toml:"max_backups"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// EngineConfig tunes progression mechanics.
type EngineConfig struct {
	RankStep           float64 `toml:"rank_step"`
	GraceHours         int     `toml:"grace_hours"`
	EventCheckMinutes  int     `toml:"event_check_minutes"`
	DynamicEventChance float64 `toml:"dynamic_event_chance"`
}

// NotificationConfig bounds notification delivery.
type NotificationConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	homeDir := appHome()
	return Config{
		Data: DataConfig{
			Dir:        filepath.Join(homeDir, "data"),
			MaxBackups: 10,
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8199,
		},
		Engine: EngineConfig{
			RankStep:           85,
			GraceHours:         12,
			EventCheckMinutes:  60,
			DynamicEventChance: 0.3,
		},
		Notifications: NotificationConfig{
			MaxPerDay:  10,
			QuietStart: "22:00",
			QuietEnd:   "08:00",
		},
	}
}

// LoadConfig reads config from $ZERO2ONE_HOME/config.toml, falling back
// to defaults. A .env file in the working directory is loaded first so
// ZERO2ONE_HOME itself can come from it.
func LoadConfig() (Config, error) {
	_ = godotenv.Load() // optional, missing .env is fine

	cfg := DefaultConfig()
	path := filepath.Join(appHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to $ZERO2ONE_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(appHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// appHome returns the data directory.
func appHome() string {
	if env := os.Getenv("ZERO2ONE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".zero2one")
}

// Home is exported for use by other packages.
func Home() string {
	return appHome()
}
