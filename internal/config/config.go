package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete tool configuration
type Config struct {
	Assignment AssignmentConfig `mapstructure:"assignment"`
	Groups     GroupsConfig     `mapstructure:"groups"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// AssignmentConfig holds the team formation parameters
type AssignmentConfig struct {
	// TeamCount is the number of teams to form.
	// 0 means derive from the roster size and TeamSizeMax.
	TeamCount int `mapstructure:"team_count"`
	// TeamSizeMin is the smallest team size the run will accept
	TeamSizeMin int `mapstructure:"team_size_min"`
	// TeamSizeMax is the largest team size the run will accept
	TeamSizeMax int `mapstructure:"team_size_max"`
	// Condition selects the assignment mode: "cross", "same", or "mixed"
	Condition string `mapstructure:"condition"`
	// Seed makes tie-breaking reproducible. A negative seed means no
	// shuffle: students are taken in roster order.
	Seed int64 `mapstructure:"seed"`
	// CrossTeams is the number of cross-disciplinary teams in mixed mode.
	// 0 means half the teams, minimum one.
	CrossTeams int `mapstructure:"cross_teams"`
}

// GroupsConfig controls how raw programme labels collapse into discipline groups
type GroupsConfig struct {
	// File is a YAML mapping from group label to programme names.
	// Empty means the built-in study mapping.
	File string `mapstructure:"file"`
	// Default is the group assigned to programmes absent from the mapping
	Default string `mapstructure:"default"`
}

// LoggingConfig controls structured logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
}

// Default returns a Config with sensible default values.
// The defaults mirror the study setup: teams of four students, give or
// take one, cross-disciplinary condition, derived team count.
func Default() *Config {
	return &Config{
		Assignment: AssignmentConfig{
			TeamCount:   0, // Derived from roster size
			TeamSizeMin: 3,
			TeamSizeMax: 5,
			Condition:   "cross",
			Seed:        -1, // No shuffle: roster order
			CrossTeams:  0,  // Mixed mode: half the teams
		},
		Groups: GroupsConfig{
			File:    "",
			Default: "OtherGroup",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			File:    "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Assignment defaults
	viper.SetDefault("assignment.team_count", defaults.Assignment.TeamCount)
	viper.SetDefault("assignment.team_size_min", defaults.Assignment.TeamSizeMin)
	viper.SetDefault("assignment.team_size_max", defaults.Assignment.TeamSizeMax)
	viper.SetDefault("assignment.condition", defaults.Assignment.Condition)
	viper.SetDefault("assignment.seed", defaults.Assignment.Seed)
	viper.SetDefault("assignment.cross_teams", defaults.Assignment.CrossTeams)

	// Groups defaults
	viper.SetDefault("groups.file", defaults.Groups.File)
	viper.SetDefault("groups.default", defaults.Groups.Default)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "assign-teams")
	}
	// Fall back to ~/.config/assign-teams
	home, err := os.UserHomeDir()
	if err != nil {
		return ".assign-teams"
	}
	return filepath.Join(home, ".config", "assign-teams")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidConditions returns the list of valid assignment conditions
func ValidConditions() []string {
	return []string{"cross", "same", "mixed"}
}

// IsValidCondition checks if the given condition is valid
func IsValidCondition(condition string) bool {
	for _, valid := range ValidConditions() {
		if condition == valid {
			return true
		}
	}
	return false
}
