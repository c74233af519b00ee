// Package report renders validation results collected from HTML pages.
//
// Renderers are looked up by name from a Registry. The text renderer is
// driven by a pongo2 template that callers can replace; the json renderer
// emits the Page slice as indented JSON.
package report
