package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formgate/pkg/dom/htmldom"
	"github.com/goliatone/go-formgate/pkg/report"
	"github.com/goliatone/go-formgate/pkg/validator"
)

// ErrInvalidForms is returned by check --strict when a form fails.
var ErrInvalidForms = errors.New("invalid forms found")

type CheckCmd struct {
	flags   *Flags
	formats *report.Registry

	// flags
	submit bool
	outDir string
	format string
	strict bool
}

// NewCheckCmd creates a new check command
func NewCheckCmd(flags *Flags) *CheckCmd {
	return &CheckCmd{flags: flags, formats: report.DefaultRegistry()}
}

// Register adds the check command to the application
func (cmd *CheckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "check",
		Usage:     "Validate every form in the matched HTML files",
		UsageText: "formgate check [--submit] [--out dir] [--format text|json] <glob...>",
		Description: `Indexes each form that matches the contract's form selector, runs the
initial silent pass and reports per-field verdicts.

Globs support ** (e.g. 'site/**/*.html'). With --submit a submission is
simulated, which forces every error visible. With --out the resulting
markup, error chrome included, is written to the given directory.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "submit",
				Usage:       "simulate a submit on every form",
				Destination: &cmd.submit,
			},
			&cli.StringFlag{
				Name:        "out",
				Usage:       "directory for annotated HTML output",
				Destination: &cmd.outDir,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (" + cmd.formats.Usage() + ")",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "exit non-zero when a form is invalid",
				Destination: &cmd.strict,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CheckCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one file or glob is required")
	}

	renderer, err := cmd.formats.Format(cmd.format)
	if err != nil {
		return err
	}

	paths, err := ExpandGlobs(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matched %s", strings.Join(c.Args().Slice(), " "))
	}

	pages, err := CheckFiles(cmd.flags.Validator(), paths, CheckOptions{Submit: cmd.submit, OutDir: cmd.outDir})
	if err != nil {
		return err
	}

	out, err := renderer.Render(ctx, pages)
	if err != nil {
		return err
	}
	if _, err := c.Root().Writer.Write(out); err != nil {
		return err
	}

	if cmd.strict && !report.Summarize(pages).OK() {
		return ErrInvalidForms
	}
	return nil
}

// CheckOptions tune CheckFiles.
type CheckOptions struct {
	Submit bool
	OutDir string
}

// CheckFiles binds v to every form in paths and collects the results.
func CheckFiles(v *validator.Validator, paths []string, opts CheckOptions) ([]report.Page, error) {
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	pages := make([]report.Page, 0, len(paths))
	for _, path := range paths {
		page, doc, err := checkFile(v, path, opts.Submit)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)

		if opts.OutDir != "" {
			if err := writeDocument(filepath.Join(opts.OutDir, filepath.Base(path)), doc); err != nil {
				return nil, err
			}
		}
	}
	return pages, nil
}

func checkFile(v *validator.Validator, path string, submit bool) (report.Page, *htmldom.Document, error) {
	doc, err := parseFile(path)
	if err != nil {
		return report.Page{}, nil, err
	}

	page := report.Page{Source: path}
	for i, form := range v.Attach(doc) {
		result := report.FormResult{Index: i + 1, Name: formName(form)}
		if submit {
			result.Submitted = doc.Submit(form.Element)
			result.Blocked = !result.Submitted
			doc.Flush()
		}
		result.Report = form.Validate()
		page.Forms = append(page.Forms, result)
	}
	return page, doc, nil
}

func formName(form *validator.Form) string {
	if form.Element == nil {
		return ""
	}
	for _, attr := range []string{"id", "name", "data-name"} {
		if value, ok := form.Element.Attr(attr); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func writeDocument(path string, doc *htmldom.Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := doc.Render(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return file.Close()
}

// ExpandGlobs resolves doublestar patterns to a sorted, de-duplicated list
// of files. Patterns without meta characters are taken as literal paths.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("stat %s: %w", pattern, err)
			}
			if _, ok := seen[pattern]; !ok {
				seen[pattern] = struct{}{}
				out = append(out, pattern)
			}
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid glob %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			out = append(out, match)
		}
	}
	sort.Strings(out)
	return out, nil
}
