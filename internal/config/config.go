// Package config loads and saves swipeplan's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all swipeplan configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Planner    PlannerConfig    `toml:"planner"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Appearance AppearanceConfig `toml:"appearance"`
	Holidays   []HolidayEntry   `toml:"holidays,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	StateDB string `toml:"state_db,omitempty"`
	Quiet   bool   `toml:"quiet"`
}

// PlannerConfig holds the defaults used when no saved state exists.
type PlannerConfig struct {
	DefaultStart     string `toml:"default_start"`
	DefaultEnd       string `toml:"default_end"`
	DefaultTotal     string `toml:"default_total"`
	DefaultRemaining string `toml:"default_remaining"`
}

// CalendarConfig holds calendar picker settings.
type CalendarConfig struct {
	WeekStart string `toml:"week_start"` // "sunday" or "monday"
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// HolidayEntry is one user-defined holiday in the config file.
type HolidayEntry struct {
	Label string   `toml:"label"`
	Dates []string `toml:"dates"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Planner: PlannerConfig{
			DefaultStart:     "20250824",
			DefaultEnd:       "20251222",
			DefaultTotal:     "283",
			DefaultRemaining: "50",
		},
		Calendar: CalendarConfig{
			WeekStart: "sunday",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "swipeplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "swipeplan")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding saved state.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "swipeplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "swipeplan")
}

// StateDBPath returns the state database path, honoring the config override.
func StateDBPath(cfg Config) string {
	if cfg.General.StateDB != "" {
		return cfg.General.StateDB
	}
	return filepath.Join(DataDir(), "state.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config location
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // see LoadFrom
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// TodayOverride returns the reference-date override from SWIPEPLAN_TODAY, if any.
func TodayOverride() string {
	return os.Getenv("SWIPEPLAN_TODAY")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
