package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// CastMemberConfig is one roster entry in the fallback cast list.
type CastMemberConfig struct {
	Name  string   `yaml:"name" validate:"required"`
	Roles []string `yaml:"roles" validate:"required,min=1"`
}

// Config represents the application configuration
type Config struct {
	// DatabaseURL is the Postgres connection string for the schedule store.
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// RosterSheetID and RosterTab locate the company cast roster
	// spreadsheet. Optional: without them the fallback roster is used.
	RosterSheetID string `yaml:"rosterSheetID,omitempty"`
	RosterTab     string `yaml:"rosterTab,omitempty"`

	// PerformanceRRule is the recurrence rule that expands into the
	// performance dates of a schedule week (e.g. FREQ=DAILY;BYDAY=TU,WE,TH,FR,SA,SU).
	PerformanceRRule string `yaml:"performanceRRule" validate:"required"`

	// ShowTimes maps a lowercase weekday name to that day's curtain times.
	// Days with two entries are double-show days. Days not listed fall back
	// to DefaultShowTime.
	ShowTimes       map[string][]string `yaml:"showTimes,omitempty"`
	DefaultShowTime string              `yaml:"defaultShowTime,omitempty"`

	// MaxAttempts overrides the engine's generation retry budget.
	MaxAttempts int `yaml:"maxAttempts,omitempty" validate:"omitempty,min=1,max=1000"`

	// DefaultCast is the fallback roster used when the roster provider is
	// unavailable. Empty means the built-in company roster.
	DefaultCast []CastMemberConfig `yaml:"defaultCast,omitempty" validate:"omitempty,min=8,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from stomp_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix, e.g.
// env="test" reads stomp_config.test.yaml.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
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

// Validate validates the configuration struct, the recurrence rule, the
// show times and the fallback roster's role names.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := rrule.StrToRRule(cfg.PerformanceRRule); err != nil {
		return fmt.Errorf("invalid performanceRRule: %w", err)
	}

	if cfg.DefaultShowTime != "" {
		if _, err := time.Parse("15:04", cfg.DefaultShowTime); err != nil {
			return fmt.Errorf("invalid defaultShowTime %q: %w", cfg.DefaultShowTime, err)
		}
	}
	for day, times := range cfg.ShowTimes {
		for _, t := range times {
			if _, err := time.Parse("15:04", t); err != nil {
				return fmt.Errorf("invalid show time %q for %s: %w", t, day, err)
			}
		}
	}

	for i, member := range cfg.DefaultCast {
		for _, roleName := range member.Roles {
			if role, ok := model.ParseRole(roleName); !ok || !role.IsPerforming() {
				return fmt.Errorf("defaultCast[%d] (%s): unknown role %q", i, member.Name, roleName)
			}
		}
	}

	return nil
}

// FallbackRoster returns the roster to use when the roster provider fails:
// the configured DefaultCast if present, otherwise the built-in company
// roster. The slice is freshly built on each call so callers never share
// mutable state.
func (c *Config) FallbackRoster() []model.CastMember {
	if len(c.DefaultCast) == 0 {
		return builtinRoster()
	}

	cast := make([]model.CastMember, 0, len(c.DefaultCast))
	for _, entry := range c.DefaultCast {
		roles := make([]model.Role, 0, len(entry.Roles))
		for _, roleName := range entry.Roles {
			if role, ok := model.ParseRole(roleName); ok {
				roles = append(roles, role)
			}
		}
		cast = append(cast, model.CastMember{Name: entry.Name, EligibleRoles: roles})
	}
	return cast
}

// builtinRoster is the fixed company roster used when no roster source is
// configured at all.
func builtinRoster() []model.CastMember {
	return []model.CastMember{
		{Name: "PHIL", EligibleRoles: []model.Role{model.RoleSarge}},
		{Name: "CALLUM", EligibleRoles: []model.Role{model.RoleSarge, model.RolePotato}},
		{Name: "DONNY", EligibleRoles: []model.Role{model.RolePotato, model.RoleRingo}},
		{Name: "HENRY", EligibleRoles: []model.Role{model.RolePotato, model.RoleParticle}},
		{Name: "IRIS", EligibleRoles: []model.Role{model.RoleMozzie, model.RoleParticle}},
		{Name: "KIKO", EligibleRoles: []model.Role{model.RoleMozzie}},
		{Name: "TILLY", EligibleRoles: []model.Role{model.RoleMozzie}},
		{Name: "LENNOX", EligibleRoles: []model.Role{model.RoleRingo, model.RoleCornish}},
		{Name: "JOSH", EligibleRoles: []model.Role{model.RoleParticle, model.RoleBin, model.RoleWho}},
		{Name: "MOLLY", EligibleRoles: []model.Role{model.RoleBin, model.RoleCornish}},
		{Name: "JASMINE", EligibleRoles: []model.Role{model.RoleBin, model.RoleCornish}},
		{Name: "SERENA", EligibleRoles: []model.Role{model.RoleBin, model.RoleCornish}},
	}
}

// findConfigFile searches for stomp_config.yaml in the current directory
// and the home directory. If env is provided it is added as an extension
// (e.g. stomp_config.test.yaml).
func findConfigFile(env string) (string, error) {
	configFileName := "stomp_config.yaml"
	if env != "" {
		configFileName = "stomp_config." + env + ".yaml"
	}

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

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
