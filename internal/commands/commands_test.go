package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formgate/pkg/report"
	"github.com/goliatone/go-formgate/pkg/testsupport"
)

func writeContact(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(testsupport.Fixture(t, testsupport.ContactFixture)), 0o644))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp("test")
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}

	base := []string{"formgate", "--config", filepath.Join(t.TempDir(), "missing.yaml")}
	err := app.Run(context.Background(), append(base, args...))
	return out.String(), err
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	a := writeContact(t, dir, "site/a/contact.html")
	b := writeContact(t, dir, "site/b.html")
	writeContact(t, dir, "site/notes.txt")

	got, err := ExpandGlobs([]string{filepath.Join(dir, "site", "**", "*.html"), b})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got)

	_, err = ExpandGlobs([]string{filepath.Join(dir, "nope.html")})
	require.Error(t, err)

	_, err = ExpandGlobs([]string{filepath.Join(dir, "[")})
	require.Error(t, err)
}

func TestCheck_JSONReport(t *testing.T) {
	dir := t.TempDir()
	writeContact(t, dir, "contact.html")

	out, err := runApp(t, "check", "--format", "json", filepath.Join(dir, "*.html"))
	require.NoError(t, err)

	var payload struct {
		Summary struct {
			Forms   int `json:"forms"`
			Invalid int `json:"invalid"`
		} `json:"summary"`
		Pages []struct {
			Forms []struct {
				Name   string `json:"name"`
				Report struct {
					Valid  bool `json:"valid"`
					Fields []struct {
						ID      string `json:"id"`
						Visible bool   `json:"visible"`
					} `json:"fields"`
				} `json:"report"`
			} `json:"forms"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))

	assert.Equal(t, 1, payload.Summary.Forms)
	assert.Equal(t, 1, payload.Summary.Invalid)
	form := payload.Pages[0].Forms[0]
	assert.Equal(t, "contact", form.Name)
	assert.False(t, form.Report.Valid)
	require.Len(t, form.Report.Fields, 5)
	for _, field := range form.Report.Fields {
		assert.False(t, field.Visible, "field %s should stay hidden without interaction", field.ID)
	}
}

func TestCheck_SubmitWritesAnnotatedHTML(t *testing.T) {
	dir := t.TempDir()
	src := writeContact(t, dir, "contact.html")
	outDir := filepath.Join(dir, "out")

	out, err := runApp(t, "check", "--submit", "--out", outDir, src)
	require.NoError(t, err)
	assert.Contains(t, out, "invalid, submit blocked")
	assert.Contains(t, out, "first error: name")

	annotated, err := os.ReadFile(filepath.Join(outDir, "contact.html"))
	require.NoError(t, err)
	assert.Contains(t, string(annotated), `class="w-input is-error"`)
	assert.Contains(t, string(annotated), "Please enter a valid email")
}

func TestCheck_Strict(t *testing.T) {
	dir := t.TempDir()
	src := writeContact(t, dir, "contact.html")

	_, err := runApp(t, "check", "--strict", src)
	require.ErrorIs(t, err, ErrInvalidForms)
}

func TestCheck_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	src := writeContact(t, dir, "contact.html")

	_, err := runApp(t, "check", "--format", "xml", src)
	require.ErrorIs(t, err, report.ErrUnknownFormat)
	assert.Contains(t, err.Error(), `"xml" (available: json, text)`)

	out, err := runApp(t, "check", "--format", " TXT ", src)
	require.NoError(t, err)
	assert.Contains(t, out, "forms valid across 1 pages")
}

func TestCheck_ThemeTokensOverrideContract(t *testing.T) {
	dir := t.TempDir()
	src := writeContact(t, dir, "contact.html")
	themePath := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte(`
name: acme
version: 1.0.0
tokens:
  formgate.error-class: has-error
variants:
  strict:
    tokens:
      formgate.error-class: has-strict-error
`), 0o644))
	outDir := filepath.Join(dir, "out")

	_, err := runApp(t, "--theme", themePath, "--theme-variant", "strict", "check", "--submit", "--out", outDir, src)
	require.NoError(t, err)

	annotated, err := os.ReadFile(filepath.Join(outDir, "contact.html"))
	require.NoError(t, err)
	assert.Contains(t, string(annotated), "has-strict-error")
	assert.NotContains(t, string(annotated), `w-input is-error`)
}

func TestCheck_ThemeWithInvalidSelectorFails(t *testing.T) {
	dir := t.TempDir()
	src := writeContact(t, dir, "contact.html")
	themePath := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte("name: broken\ntokens:\n  formgate.form: \"form[\"\n"), 0o644))

	_, err := runApp(t, "--theme", themePath, "check", "--strict", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply theme")
	assert.NotErrorIs(t, err, ErrInvalidForms)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "form_selector", fieldErrs[0].Field)
}

func TestCheck_UnknownThemeVariantFails(t *testing.T) {
	dir := t.TempDir()
	src := writeContact(t, dir, "contact.html")
	themePath := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte("name: acme\nvariants:\n  strict:\n    tokens:\n      formgate.error-class: has-strict-error\n"), 0o644))

	_, err := runApp(t, "--theme", themePath, "--theme-variant", "loose", "check", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no variant "loose" (available: strict)`)

	_, err = runApp(t, "--theme-variant", "strict", "check", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a theme")
}

func TestRules_Table(t *testing.T) {
	dir := t.TempDir()
	src := writeContact(t, dir, "contact.html")

	out, err := runApp(t, "rules", src)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"FORM", "FIELD", "RULE", "MATCHER", "LABEL"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "email", "email", "email", "yes"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"1", "message", "length", "length", "no"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"1", "terms", "checkbox", "checkbox", "yes"}, strings.Fields(lines[5]))
}

func TestRules_RequiresOneFile(t *testing.T) {
	_, err := runApp(t, "rules")
	require.Error(t, err)
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: acme\ntokens:\n  formgate.submit-disabled-class: muted\n"), 0o644))

	manifest, err := LoadTheme(path)
	require.NoError(t, err)
	assert.Equal(t, "acme", manifest.Name)
	assert.Equal(t, "muted", manifest.Tokens["formgate.submit-disabled-class"])
	assert.Empty(t, manifest.Variants)

	_, err = LoadTheme(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
