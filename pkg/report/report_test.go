package report

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/validator"
)

func samplePages() []Page {
	return []Page{
		{
			Source: "pages/contact.html",
			Forms: []FormResult{
				{
					Index:   1,
					Name:    "contact",
					Blocked: true,
					Report: validator.Report{
						Forced: true,
						Fields: []validator.FieldResult{
							{ID: "name", Kind: rules.KindLength, Value: "A", Valid: false, Visible: true, Touched: true},
							{ID: "email", Kind: rules.KindEmail, Value: "a&b@example.com", Valid: true},
						},
						FirstError: "name",
					},
				},
			},
		},
		{
			Source: "pages/empty.html",
		},
	}
}

func TestSummarize(t *testing.T) {
	pages := samplePages()
	pages[0].Forms = append(pages[0].Forms, FormResult{Index: 2, Report: validator.Report{Valid: true}})

	got := Summarize(pages)
	want := Summary{Pages: 2, Forms: 2, Valid: 1, Invalid: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if got.OK() {
		t.Fatalf("expected summary with an invalid form to fail")
	}
	if !Summarize(nil).OK() {
		t.Fatalf("expected empty summary to pass")
	}
}

func TestTextRenderer(t *testing.T) {
	out, err := NewText().Render(context.Background(), samplePages())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	for _, fragment := range []string{
		"pages/contact.html\n",
		"  form 1 (contact): invalid, submit blocked\n",
		"    FAIL name [length] (error shown)\n",
		"    ok   email [email]\n",
		"    first error: name\n",
		"pages/empty.html\n  no forms\n",
		"0/1 forms valid across 2 pages",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, text)
		}
	}
}

func TestTextRendererCustomTemplate(t *testing.T) {
	renderer := NewText(WithTemplate(`{% for page in pages %}{{ page.Source }};{% endfor %}{{ summary.Invalid }}`))
	out, err := renderer.Render(context.Background(), samplePages())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "pages/contact.html;pages/empty.html;1" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTextRendererBadTemplate(t *testing.T) {
	renderer := NewText(WithTemplate(`{% for page in pages %}`))
	if _, err := renderer.Render(context.Background(), nil); err == nil {
		t.Fatalf("expected template error")
	}
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSON().Render(context.Background(), samplePages())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded struct {
		Summary Summary `json:"summary"`
		Pages   []struct {
			Source string `json:"source"`
			Forms  []struct {
				Blocked bool `json:"blocked"`
				Report  struct {
					FirstError string `json:"firstError"`
				} `json:"report"`
			} `json:"forms"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Summary.Invalid != 1 || len(decoded.Pages) != 2 {
		t.Fatalf("unexpected payload %+v", decoded)
	}
	if !decoded.Pages[0].Forms[0].Blocked || decoded.Pages[0].Forms[0].Report.FirstError != "name" {
		t.Fatalf("unexpected form payload %+v", decoded.Pages[0].Forms[0])
	}
}

func TestRegistry(t *testing.T) {
	registry := DefaultRegistry()
	if diff := cmp.Diff([]string{"json", "text"}, registry.List()); diff != "" {
		t.Fatalf("renderer names mismatch (-want +got):\n%s", diff)
	}
	if err := registry.Register(NewJSON()); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
	renderer, err := registry.Format("text")
	if err != nil || renderer.ContentType() != "text/plain" {
		t.Fatalf("unexpected text renderer %v, %v", renderer, err)
	}
	if diff := cmp.Diff("json|text", registry.Usage()); diff != "" {
		t.Fatalf("usage mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_FormatNormalizesAndResolvesAliases(t *testing.T) {
	registry := DefaultRegistry()
	for _, name := range []string{" JSON ", "Json"} {
		renderer, err := registry.Format(name)
		if err != nil || renderer.Name() != "json" {
			t.Fatalf("Format(%q) = %v, %v", name, renderer, err)
		}
	}
	for _, alias := range []string{"txt", "PLAIN"} {
		renderer, err := registry.Format(alias)
		if err != nil || renderer.Name() != "text" {
			t.Fatalf("Format(%q) = %v, %v", alias, renderer, err)
		}
	}
}

func TestRegistry_UnknownFormatListsAvailable(t *testing.T) {
	registry := DefaultRegistry()
	_, err := registry.Format("yaml")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if want := `report: unknown format "yaml" (available: json, text)`; err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestRegistry_AliasConflicts(t *testing.T) {
	registry := DefaultRegistry()
	if err := registry.Alias("txt", "json"); err == nil {
		t.Fatalf("expected taken alias to fail")
	}
	if err := registry.Alias("yml", "yaml"); err == nil {
		t.Fatalf("expected alias to unregistered format to fail")
	}
	if err := registry.Register(namedRenderer{name: "Plain"}); err == nil {
		t.Fatalf("expected renderer shadowing an alias to fail")
	}
}

type namedRenderer struct {
	Renderer
	name string
}

func (n namedRenderer) Name() string { return n.name }
