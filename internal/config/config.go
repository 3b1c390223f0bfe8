// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Day     DayConfig     `toml:"day"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// DayConfig describes how a day is partitioned into units and bases.
type DayConfig struct {
	StepSeconds int    `toml:"step_seconds"` // size of one unit, e.g. 600
	Start       string `toml:"start"`        // e.g. "09:00"
	End         string `toml:"end"`          // e.g. "18:00"
	Bases       int    `toml:"bases"`        // number of slot groups the day splits into
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	Color bool `toml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Day: DayConfig{
			StepSeconds: 600,
			Start:       "09:00",
			End:         "18:00",
			Bases:       1,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Color: true,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dailyslot.db"
	}
	return filepath.Join(home, ".local", "share", "dailyslot", "dailyslot.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "dailyslot", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DAILYSLOT_DAY_START"); v != "" {
		cfg.Day.Start = v
	}
	if v := os.Getenv("DAILYSLOT_DAY_END"); v != "" {
		cfg.Day.End = v
	}
	if v := os.Getenv("DAILYSLOT_STEP_SECONDS"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			cfg.Day.StepSeconds = n
		}
	}
	if v := os.Getenv("DAILYSLOT_BASES"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			cfg.Day.Bases = n
		}
	}
	if v := os.Getenv("DAILYSLOT_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DAILYSLOT_NO_COLOR"); v != "" {
		cfg.UI.Color = false
	}
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a number: %q", s)
		}
		n = n*10 + int(c-'0')
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive: %q", s)
	}
	return n, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// DaySeconds returns the span of the configured day in seconds.
func (c *Config) DaySeconds() int {
	return (timeToMinutes(c.Day.End) - timeToMinutes(c.Day.Start)) * 60
}

// UnitCount returns the number of units one base holds.
func (c *Config) UnitCount() int {
	return c.DaySeconds() / c.Day.StepSeconds / c.Day.Bases
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Day.Start, "start"); err != nil {
		return err
	}
	if err := validateTime(c.Day.End, "end"); err != nil {
		return err
	}
	if c.Day.Start >= c.Day.End {
		return errors.New("day start must be before day end")
	}
	if c.Day.StepSeconds <= 0 {
		return errors.New("step_seconds must be positive")
	}
	if c.Day.Bases < 1 {
		return errors.New("bases must be at least 1")
	}
	if c.DaySeconds()%(c.Day.StepSeconds*c.Day.Bases) != 0 {
		return errors.New("day span must divide evenly into bases and units")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	if !isDigits(t[0:2]) || !isDigits(t[3:5]) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func timeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}
