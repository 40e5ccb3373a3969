package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/formacontact/leadbot/core/config"
	coredatabase "github.com/formacontact/leadbot/core/database"
	"github.com/formacontact/leadbot/internal/form"
	"github.com/formacontact/leadbot/internal/phone"
)

// FormConfig parameterizes the intake dialog and its phone plan.
type FormConfig struct {
	HomeCountryCode string   `yaml:"home_country_code" envconfig:"FORM_HOME_COUNTRY_CODE"`
	TrunkPrefix     string   `yaml:"trunk_prefix" envconfig:"FORM_TRUNK_PREFIX"`
	MobileLead      string   `yaml:"mobile_lead" envconfig:"FORM_MOBILE_LEAD"`
	StartTokens     []string `yaml:"start_tokens" envconfig:"FORM_START_TOKENS"`
}

// NotifyConfig holds lead-delivery settings.
type NotifyConfig struct {
	OperatorChatID int64 `yaml:"operator_chat_id" envconfig:"ADMIN_CHAT_ID"`
}

// Config aggregates the core configuration with bot-specific sections.
// The database section is optional: an empty host disables the journal.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Form     FormConfig          `yaml:"form"`
	Notify   NotifyConfig        `yaml:"notify"`
	Database coredatabase.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Plan builds the phone plan from configuration, falling back to the
// default plan for unset fields.
func (c *Config) Plan() phone.Plan {
	plan := phone.DefaultPlan
	if cc := strings.TrimSpace(c.Form.HomeCountryCode); cc != "" {
		plan.CountryCode = cc
	}
	if tp := strings.TrimSpace(c.Form.TrunkPrefix); tp != "" {
		plan.TrunkPrefix = tp[0]
	}
	if ml := strings.TrimSpace(c.Form.MobileLead); ml != "" {
		plan.MobileLead = ml[0]
	}
	return plan
}

// StartTokens returns the configured deep-link tokens, or the defaults
// when the config leaves them unset.
func (c *Config) StartTokens() map[string]struct{} {
	if len(c.Form.StartTokens) == 0 {
		return form.DefaultStartTokens()
	}
	tokens := make(map[string]struct{}, len(c.Form.StartTokens))
	for _, t := range c.Form.StartTokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tokens[t] = struct{}{}
		}
	}
	return tokens
}

// LoadConfig reads the YAML config file, applies environment overrides,
// and validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	for _, field := range []struct {
		name, value string
	}{
		{"form.home_country_code", cfg.Form.HomeCountryCode},
		{"form.trunk_prefix", cfg.Form.TrunkPrefix},
		{"form.mobile_lead", cfg.Form.MobileLead},
	} {
		for _, r := range strings.TrimSpace(field.value) {
			if r < '0' || r > '9' {
				return fmt.Errorf("%s must contain digits only, got %q", field.name, field.value)
			}
		}
	}
	if len(strings.TrimSpace(cfg.Form.TrunkPrefix)) > 1 {
		return fmt.Errorf("form.trunk_prefix must be a single digit, got %q", cfg.Form.TrunkPrefix)
	}
	if len(strings.TrimSpace(cfg.Form.MobileLead)) > 1 {
		return fmt.Errorf("form.mobile_lead must be a single digit, got %q", cfg.Form.MobileLead)
	}
	return nil
}
