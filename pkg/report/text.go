package report

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

const textTemplate = "templates/text.tpl"

// TextOption customises the text renderer.
type TextOption func(*Text)

// WithTemplate replaces the built-in template with source. The template sees
// `pages` ([]Page) and `summary` (Summary).
func WithTemplate(source string) TextOption {
	return func(t *Text) {
		t.source = source
	}
}

// Text renders a human readable report from a pongo2 template.
type Text struct {
	source string

	once sync.Once
	tpl  *pongo2.Template
	err  error
}

// NewText returns the text renderer.
func NewText(options ...TextOption) *Text {
	t := &Text{}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func (*Text) Name() string        { return "text" }
func (*Text) ContentType() string { return "text/plain" }

func (t *Text) Render(_ context.Context, pages []Page) ([]byte, error) {
	tpl, err := t.template()
	if err != nil {
		return nil, err
	}
	out, err := tpl.ExecuteBytes(pongo2.Context{
		"pages":   pages,
		"summary": Summarize(pages),
	})
	if err != nil {
		return nil, fmt.Errorf("report: execute text template: %w", err)
	}
	return out, nil
}

func (t *Text) template() (*pongo2.Template, error) {
	t.once.Do(func() {
		set := pongo2.NewSet("formgate-report", pongo2.NewFSLoader(templatesFS))
		if t.source != "" {
			t.tpl, t.err = set.FromString(t.source)
		} else {
			t.tpl, t.err = set.FromFile(textTemplate)
		}
		if t.err != nil {
			t.err = fmt.Errorf("report: load text template: %w", t.err)
		}
	})
	return t.tpl, t.err
}
