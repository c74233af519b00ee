package formgate

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formgate/pkg/dom/htmldom"
	"github.com/goliatone/go-formgate/pkg/markup"
	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/validator"
)

// Contract aliases markup.Contract for callers configuring selectors and
// classes from the top-level module.
type Contract = markup.Contract

// Policy aliases rules.Policy.
type Policy = rules.Policy

// Report aliases validator.Report.
type Report = validator.Report

// Option aliases validator.Option.
type Option = validator.Option

// New exposes the validator constructor from the top-level module.
func New(options ...Option) *validator.Validator {
	return validator.New(options...)
}

// AttachHTML parses r and binds every matching form. The returned document
// can be driven with its Type, Click and Submit helpers.
func AttachHTML(r io.Reader, options ...Option) (*htmldom.Document, []*validator.Form, error) {
	doc, err := htmldom.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("formgate: parse html: %w", err)
	}
	return doc, validator.New(options...).Attach(doc), nil
}

// ValidateHTML binds every form in markup, attempts a submit on each and
// returns the forced reports in document order.
func ValidateHTML(ctx context.Context, markup string, options ...Option) ([]Report, error) {
	doc, forms, err := AttachHTML(strings.NewReader(markup), options...)
	if err != nil {
		return nil, err
	}
	reports := make([]Report, 0, len(forms))
	for _, form := range forms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc.Submit(form.Element)
		doc.Flush()
		reports = append(reports, form.Validate())
	}
	return reports, nil
}
