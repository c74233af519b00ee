package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formgate/internal/config"
	"github.com/goliatone/go-formgate/internal/logutils"
	"github.com/goliatone/go-formgate/pkg/markup"
)

// NewApp builds the formgate root command with every subcommand registered.
func NewApp(version string) *cli.Command {
	var logCloser func()
	flags := &Flags{}

	app := &cli.Command{
		Name:      "formgate",
		Usage:     "Validate builder forms headlessly",
		UsageText: "formgate [global options] command [command options]",
		Description: `formgate indexes forms exported from a page builder, resolves the rule
declared on each field and replays user interaction against the markup:
errors stay hidden until a field is touched or a submit is attempted.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (trace, debug, info, warn, error)",
				Sources:     cli.EnvVars("FORMGATE_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("FORMGATE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FORMGATE_CONFIG"),
				Value:       DefaultConfigPath,
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "theme manifest providing formgate.* contract tokens",
				Sources:     cli.EnvVars("FORMGATE_THEME"),
				Destination: &flags.ThemePath,
			},
			&cli.StringFlag{
				Name:        "theme-variant",
				Usage:       "theme variant whose tokens override the base tokens",
				Sources:     cli.EnvVars("FORMGATE_THEME_VARIANT"),
				Destination: &flags.ThemeVariant,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			flags.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			if flags.ThemePath != "" {
				manifest, err := LoadTheme(flags.ThemePath)
				if err != nil {
					return ctx, err
				}
				flags.Theme = manifest
			}
			if _, err := markup.ResolveTheme(cfg.Contract, flags.Theme, flags.ThemeVariant); err != nil {
				return ctx, fmt.Errorf("apply theme: %w", err)
			}

			flags.Logger.Debug().
				Str("config", flags.ConfigPath).
				Str("theme", flags.ThemePath).
				Msg("configuration loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = NewCheckCmd(flags).Register(app)
	app = NewRulesCmd(flags).Register(app)
	app = NewFillCmd(flags).Register(app)

	return app
}
