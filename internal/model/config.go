package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is the initial theme ("light" or "dark") used until the user
	// toggles and a preference is stored.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// SearchConfig controls how the card filter matches queries.
type SearchConfig struct {
	// Mode is "substring" or "fuzzy".
	Mode string `mapstructure:"mode" yaml:"mode"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`

	// File receives log output while the terminal UI owns stdout.
	File string `mapstructure:"file" yaml:"file"`
}

// SyncConfig controls how the terminal UI watches the database for changes
// made by other processes.
type SyncConfig struct {
	// PollIntervalSec is how often (in seconds) to reload the board.
	// Zero disables polling.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	DBPath  string        `mapstructure:"db_path" yaml:"db_path"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Sync    SyncConfig    `mapstructure:"sync" yaml:"sync"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
}

// configDir returns ~/.config/taskboard, falling back to the working
// directory when the home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "taskboard")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskboard/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		DBPath: filepath.Join(dir, "board.db"),
		Display: DisplayConfig{
			Theme: "light",
		},
		Search: SearchConfig{
			Mode: "substring",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dir, "taskboard.log"),
		},
		Sync: SyncConfig{
			PollIntervalSec: 5,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
// TASKBOARD_* environment variables override file values.
func LoadConfig(path string) (*AppConfig, error) {
	defaults := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("taskboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("display.theme", defaults.Display.Theme)
	v.SetDefault("search.mode", defaults.Search.Mode)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("sync.poll_interval_sec", defaults.Sync.PollIntervalSec)
	v.SetDefault("server.addr", defaults.Server.Addr)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Display.Theme = strings.ToLower(strings.TrimSpace(cfg.Display.Theme))
	cfg.Search.Mode = strings.ToLower(strings.TrimSpace(cfg.Search.Mode))
	if cfg.Sync.PollIntervalSec < 0 {
		cfg.Sync.PollIntervalSec = 0
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("display.theme", cfg.Display.Theme)
	v.Set("search.mode", cfg.Search.Mode)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.file", cfg.Log.File)
	v.Set("sync.poll_interval_sec", cfg.Sync.PollIntervalSec)
	v.Set("server.addr", cfg.Server.Addr)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
