package commands

import (
	"github.com/rs/zerolog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgate/internal/config"
	"github.com/goliatone/go-formgate/pkg/markup"
	"github.com/goliatone/go-formgate/pkg/validator"
)

// DefaultConfigPath is looked up in the working directory. A missing file
// means built-in defaults.
const DefaultConfigPath = "formgate.yaml"

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	ThemePath    string
	ThemeVariant string

	// Populated in the Before hook and available to all commands.
	Config *config.Config
	Theme  *theme.Manifest
	Logger zerolog.Logger
}

// Contract returns the configured contract with theme tokens applied.
func (f *Flags) Contract() markup.Contract {
	cfg := f.config()
	return markup.FromTheme(cfg.Contract, f.Theme, f.ThemeVariant)
}

// Validator builds a validator from the loaded configuration and theme.
func (f *Flags) Validator() *validator.Validator {
	cfg := f.config()
	return validator.New(
		validator.WithContract(f.Contract()),
		validator.WithPolicy(cfg.Policy),
		validator.WithLogger(f.Logger),
		validator.WithDeferredCheckboxClick(cfg.DeferCheckboxClickOr(true)),
	)
}

func (f *Flags) config() *config.Config {
	if f.Config != nil {
		return f.Config
	}
	cfg := config.DefaultConfig()
	return &cfg
}
