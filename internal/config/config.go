package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/stbarnabas/serveteam/pkg/core/solver"
)

// SeriesRole defines one role demand on every occurrence of an event series
type SeriesRole struct {
	Role  string `yaml:"role" validate:"required"`
	Count int    `yaml:"count" validate:"required,min=1"`
}

// EventSeries defines a recurring event template. Occurrences are expanded
// from the rrule when seeding events.
type EventSeries struct {
	Name            string       `yaml:"name" validate:"required"`
	RRule           string       `yaml:"rrule" validate:"required"`
	StartTime       string       `yaml:"startTime" validate:"required"`
	DurationMinutes int          `yaml:"durationMinutes" validate:"required,min=1"`
	Roles           []SeriesRole `yaml:"roles" validate:"required,min=1,dive"`
}

// SolverSettings holds the tunable knobs of the assignment search
type SolverSettings struct {
	Strategy            string  `yaml:"strategy,omitempty" validate:"omitempty,oneof=greedy backtracking"`
	WeightTotalLoad     float64 `yaml:"weightTotalLoad,omitempty" validate:"omitempty,min=0"`
	WeightRecency       float64 `yaml:"weightRecency,omitempty" validate:"omitempty,min=0"`
	AllowBackToBack     bool    `yaml:"allowBackToBack,omitempty"`
	SearchBudgetSeconds int     `yaml:"searchBudgetSeconds,omitempty" validate:"omitempty,min=1"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL       string         `yaml:"databaseURL" validate:"required"`
	OrganizationID    string         `yaml:"organizationID" validate:"required"`
	HistoryWindowDays int            `yaml:"historyWindowDays,omitempty" validate:"omitempty,min=1"`
	Solver            SolverSettings `yaml:"solver,omitempty"`
	EventSeries       []EventSeries  `yaml:"eventSeries,omitempty" validate:"dive"`
	CalendarID        string         `yaml:"calendarID,omitempty"`
}

// DefaultHistoryWindowDays bounds how far back prior assignments count
// towards fairness when the config does not say otherwise
const DefaultHistoryWindowDays = 180

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from serveteam.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule and
// time-of-day syntax for each event series
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, series := range cfg.EventSeries {
		if _, err := rrule.StrToRRule(series.RRule); err != nil {
			return fmt.Errorf("invalid rrule in eventSeries[%d]: %w", i, err)
		}
		if _, err := time.Parse("15:04", series.StartTime); err != nil {
			return fmt.Errorf("invalid startTime in eventSeries[%d] (want HH:MM): %w", i, err)
		}
	}

	return nil
}

// HistoryWindow returns the configured fairness history window, falling back
// to the default when unset
func (c *Config) HistoryWindow() int {
	if c.HistoryWindowDays > 0 {
		return c.HistoryWindowDays
	}
	return DefaultHistoryWindowDays
}

// SolverConfig converts the yaml solver settings into a solver.Config,
// applying defaults for anything left unset
func (c *Config) SolverConfig() solver.Config {
	sc := solver.DefaultConfig()

	if c.Solver.Strategy != "" {
		sc.Strategy = c.Solver.Strategy
	}
	if c.Solver.WeightTotalLoad > 0 {
		sc.WeightTotalLoad = c.Solver.WeightTotalLoad
	}
	if c.Solver.WeightRecency > 0 {
		sc.WeightRecency = c.Solver.WeightRecency
	}
	sc.AllowBackToBack = c.Solver.AllowBackToBack
	if c.Solver.SearchBudgetSeconds > 0 {
		sc.SearchBudget = time.Duration(c.Solver.SearchBudgetSeconds) * time.Second
	}

	return sc
}

// findConfigFile searches for serveteam.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "serveteam.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
