package testsupport

import (
	"embed"
	"testing"

	"github.com/goliatone/go-formgate/pkg/dom/htmldom"
)

//go:embed testdata/*.html
var fixtures embed.FS

// ContactFixture names the builder contact form fixture: a length-checked
// name, an email field with custom error text, a phone field, a length-checked
// textarea without an error label, a custom checkbox and a wrapper with no
// field.
const ContactFixture = "contact.html"

// Fixture returns the raw markup of a bundled fixture.
func Fixture(t *testing.T, name string) string {
	t.Helper()

	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

// LoadDocument parses a bundled fixture into a headless document.
func LoadDocument(t *testing.T, name string) *htmldom.Document {
	t.Helper()
	return ParseDocument(t, Fixture(t, name))
}

// ParseDocument parses markup, failing the test on error.
func ParseDocument(t *testing.T, markup string) *htmldom.Document {
	t.Helper()

	doc, err := htmldom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}
