package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// WeeklyLimitDefaults holds the default weekly work-day limit per employment
// category, overridable per therapist in the roster
type WeeklyLimitDefaults struct {
	FullTime int `yaml:"fullTime" validate:"omitempty,min=1,max=7"`
	PartTime int `yaml:"partTime" validate:"omitempty,min=1,max=7"`
	PerDiem  int `yaml:"perDiem" validate:"omitempty,min=1,max=7"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// Coverage band applied per (date, shift) slot
	MinCoveragePerShift int `yaml:"minCoveragePerShift" validate:"omitempty,min=1"`
	MaxCoveragePerShift int `yaml:"maxCoveragePerShift" validate:"omitempty,min=1"`

	WeeklyLimitDefaults WeeklyLimitDefaults `yaml:"weeklyLimitDefaults"`

	// ClosureRules are RRULE strings describing recurring facility closures
	// (holidays, maintenance days); matching dates are blocked for everyone
	// during generation
	ClosureRules []string `yaml:"closureRules,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for the given
// environment. It looks for scheduler_config.<env>.yaml (or
// scheduler_config.yaml when env is empty) in the current directory first,
// then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	name := "scheduler_config.yaml"
	if env != "" {
		name = fmt.Sprintf("scheduler_config.%s.yaml", env)
	}

	path, err := findConfigFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(path)
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

	cfg.applyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the coverage band, and the
// closure rule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.MaxCoveragePerShift < cfg.MinCoveragePerShift {
		return fmt.Errorf("maxCoveragePerShift (%d) must not be below minCoveragePerShift (%d)",
			cfg.MaxCoveragePerShift, cfg.MinCoveragePerShift)
	}

	for i, rule := range cfg.ClosureRules {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
	}

	return nil
}

// ClosureDates expands the closure rules over the given inclusive date range
// and returns the matching dates as ISO strings
func (c *Config) ClosureDates(start, end time.Time) (map[string]bool, error) {
	blocked := make(map[string]bool)

	for i, raw := range c.ClosureRules {
		rule, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
		rule.DTStart(start.AddDate(-1, 0, 0))

		for _, occurrence := range rule.Between(start, end.AddDate(0, 0, 1), true) {
			blocked[occurrence.Format("2006-01-02")] = true
		}
	}

	return blocked, nil
}

func (c *Config) applyDefaults() {
	if c.MinCoveragePerShift == 0 {
		c.MinCoveragePerShift = 2
	}
	if c.MaxCoveragePerShift == 0 {
		c.MaxCoveragePerShift = 6
	}
	if c.WeeklyLimitDefaults.FullTime == 0 {
		c.WeeklyLimitDefaults.FullTime = 5
	}
	if c.WeeklyLimitDefaults.PartTime == 0 {
		c.WeeklyLimitDefaults.PartTime = 3
	}
	if c.WeeklyLimitDefaults.PerDiem == 0 {
		c.WeeklyLimitDefaults.PerDiem = 2
	}
}

// findConfigFile searches for the named config file in the current directory
// and the home directory
func findConfigFile(name string) (string, error) {
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

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
