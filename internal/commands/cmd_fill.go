package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formgate/internal/prompt"
	"github.com/goliatone/go-formgate/pkg/dom/htmldom"
	"github.com/goliatone/go-formgate/pkg/report"
)

type FillCmd struct {
	flags *Flags

	// flags
	form     int
	out      string
	attempts int
}

// NewFillCmd creates a new fill command
func NewFillCmd(flags *Flags) *FillCmd {
	return &FillCmd{flags: flags}
}

// Register adds the fill command to the application
func (cmd *FillCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "fill",
		Usage:     "Fill a form interactively and submit it",
		UsageText: "formgate fill [--form n] [--out file] <file>",
		Description: `Prompts for every field of a form, replays each answer as focus, input
and blur events, then simulates a submit and prints the report.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "form",
				Usage:       "1-based index of the form to fill",
				Value:       1,
				Destination: &cmd.form,
			},
			&cli.StringFlag{
				Name:        "out",
				Usage:       "write the resulting HTML to this file",
				Destination: &cmd.out,
			},
			&cli.IntFlag{
				Name:        "attempts",
				Usage:       "times an invalid field is asked again",
				Value:       prompt.DefaultAttempts,
				Destination: &cmd.attempts,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *FillCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("exactly one file is required")
	}
	path := c.Args().First()
	doc, err := parseFile(path)
	if err != nil {
		return err
	}

	forms := cmd.flags.Validator().Attach(doc)
	if cmd.form < 1 || cmd.form > len(forms) {
		return fmt.Errorf("form %d not found, %s has %d forms", cmd.form, path, len(forms))
	}
	form := forms[cmd.form-1]

	outcome, err := prompt.Fill(ctx, prompt.NewSurveyDriver(c.Root().Writer), doc, form, cmd.attempts)
	if err != nil {
		return err
	}

	if cmd.out != "" {
		if err := writeDocument(cmd.out, doc); err != nil {
			return err
		}
	}

	page := report.Page{
		Source: path,
		Forms: []report.FormResult{{
			Index:     cmd.form,
			Name:      formName(form),
			Submitted: outcome.Submitted,
			Blocked:   !outcome.Submitted,
			Report:    outcome.Report,
		}},
	}
	rendered, err := report.NewText().Render(ctx, []report.Page{page})
	if err != nil {
		return err
	}
	_, err = c.Root().Writer.Write(rendered)
	return err
}

func parseFile(path string) (*htmldom.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	doc, err := htmldom.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
