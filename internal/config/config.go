package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgate/pkg/markup"
	"github.com/goliatone/go-formgate/pkg/rules"
)

// EnvPrefix namespaces every environment override, e.g.
// FORMGATE_POLICY_PHONE_MIN_DIGITS or FORMGATE_CONTRACT_FILE.
const EnvPrefix = "FORMGATE_"

// Config is the CLI configuration: the markup contract, the rule policy and
// the checkbox click deferral switch.
type Config struct {
	Contract markup.Contract `yaml:"contract"`
	Policy   rules.Policy    `yaml:"policy" envPrefix:"POLICY_"`

	// ContractFile points at a separate contract document layered over
	// Contract. Relative paths resolve against the config file's directory.
	ContractFile string `yaml:"contract_file" env:"CONTRACT_FILE"`

	// DeferCheckboxClick is nil when unset so the validator default applies.
	DeferCheckboxClick *bool `yaml:"defer_checkbox_click" env:"DEFER_CHECKBOX_CLICK"`
}

// DefaultConfig returns a Config with the built-in contract and policy.
func DefaultConfig() Config {
	return Config{
		Contract: markup.Default(),
		Policy:   rules.DefaultPolicy(),
	}
}

// Load reads configuration from configPath (skipped when empty or missing),
// applies FORMGATE_* environment overrides, layers the contract file and
// validates the result.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	baseDir := ""

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
			baseDir = filepath.Dir(configPath)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.ContractFile != "" {
		path := cfg.ContractFile
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read contract file: %w", err)
		}
		layered, err := markup.Parse(data, path)
		if err != nil {
			return nil, err
		}
		cfg.Contract = cfg.Contract.Merge(layered)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.Contract = c.Contract.WithDefaults()
	c.Policy = c.Policy.WithDefaults()
}

// Validate checks the contract selectors and the policy values.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.Contract.Validate(),
		criterio.Run("policy", c.Policy, rules.Policy.Validate),
	)
}

// DeferCheckboxClickOr returns the configured deferral switch or fallback.
func (c *Config) DeferCheckboxClickOr(fallback bool) bool {
	if c == nil || c.DeferCheckboxClick == nil {
		return fallback
	}
	return *c.DeferCheckboxClick
}
