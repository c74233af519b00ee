package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formgate/pkg/dom/htmldom"
	"github.com/goliatone/go-formgate/pkg/validator"
)

type RulesCmd struct {
	flags *Flags
}

// NewRulesCmd creates a new rules command
func NewRulesCmd(flags *Flags) *RulesCmd {
	return &RulesCmd{flags: flags}
}

// Register adds the rules command to the application
func (cmd *RulesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "rules",
		Usage:       "List the rule resolved for every field",
		UsageText:   "formgate rules <file>",
		Description: "Indexes the forms in an HTML file and prints each field with its rule, the matcher that produced it and whether an error label was found.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *RulesCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("exactly one file is required")
	}
	doc, err := parseFile(c.Args().First())
	if err != nil {
		return err
	}
	return WriteRules(c.Root().Writer, cmd.flags.Validator(), doc)
}

// WriteRules prints a table of the indexed fields of every form in doc.
func WriteRules(out io.Writer, v *validator.Validator, doc *htmldom.Document) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FORM\tFIELD\tRULE\tMATCHER\tLABEL")

	for i, el := range doc.QueryAll(v.Contract().FormSelector) {
		form := v.Index(el)
		for _, field := range form.Fields {
			kind := string(field.Kind())
			if kind == "" {
				kind = "-"
			}
			matcher := field.Matcher
			if matcher == "" {
				matcher = "-"
			}
			label := "no"
			if field.Label != nil {
				label = "yes"
			}
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, field.ID, kind, matcher, label)
		}
	}
	return w.Flush()
}
