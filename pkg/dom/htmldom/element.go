package htmldom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-formgate/pkg/dom"
)

var _ dom.Element = (*Element)(nil)

// Element wraps an element node. The Document hands out one Element per node
// so values can be compared and used as map keys.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node exposes the underlying parse tree node.
func (e *Element) Node() *html.Node { return e.node }

func (e *Element) TagName() string {
	return strings.ToLower(e.node.Data)
}

func (e *Element) Attr(name string) (string, bool) {
	key := strings.ToLower(name)
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func (e *Element) SetAttr(name, value string) {
	key := strings.ToLower(name)
	for i, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

func (e *Element) RemoveAttr(name string) {
	key := strings.ToLower(name)
	kept := e.node.Attr[:0]
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		kept = append(kept, attr)
	}
	e.node.Attr = kept
}

func (e *Element) classes() []string {
	raw, _ := e.Attr("class")
	return strings.Fields(raw)
}

func (e *Element) HasClass(name string) bool {
	for _, class := range e.classes() {
		if class == name {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(name string) {
	name = strings.TrimSpace(name)
	if name == "" || e.HasClass(name) {
		return
	}
	e.SetAttr("class", strings.Join(append(e.classes(), name), " "))
}

func (e *Element) RemoveClass(name string) {
	if !e.HasClass(name) {
		return
	}
	current := e.classes()
	kept := current[:0]
	for _, class := range current {
		if class != name {
			kept = append(kept, class)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// Value reads textarea content, the selected option of a select, or the
// value attribute of anything else.
func (e *Element) Value() string {
	switch e.TagName() {
	case "textarea":
		return e.Text()
	case "select":
		options := e.QueryAll("option")
		for _, option := range options {
			if _, ok := option.Attr("selected"); ok {
				return optionValue(option)
			}
		}
		if len(options) > 0 {
			return optionValue(options[0])
		}
		return ""
	}
	v, _ := e.Attr("value")
	return v
}

func optionValue(option dom.Element) string {
	if v, ok := option.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(option.Text())
}

func (e *Element) SetValue(value string) {
	switch e.TagName() {
	case "textarea":
		e.SetText(value)
	case "select":
		for _, option := range e.QueryAll("option") {
			if optionValue(option) == value {
				option.SetAttr("selected", "")
			} else {
				option.RemoveAttr("selected")
			}
		}
	default:
		e.SetAttr("value", value)
	}
}

func (e *Element) Checked() bool {
	_, ok := e.Attr("checked")
	return ok
}

func (e *Element) SetChecked(checked bool) {
	if checked {
		e.SetAttr("checked", "")
		return
	}
	e.RemoveAttr("checked")
}

func (e *Element) Text() string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				b.WriteString(child.Data)
				continue
			}
			rec(child)
		}
	}
	rec(e.node)
	return b.String()
}

func (e *Element) SetText(text string) {
	for child := e.node.FirstChild; child != nil; {
		next := child.NextSibling
		e.node.RemoveChild(child)
		child = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *Element) Style(property string) string {
	raw, _ := e.Attr("style")
	key := strings.ToLower(strings.TrimSpace(property))
	for _, decl := range parseStyle(raw) {
		if decl[0] == key {
			return decl[1]
		}
	}
	return ""
}

func (e *Element) SetStyle(property, value string) {
	raw, _ := e.Attr("style")
	key := strings.ToLower(strings.TrimSpace(property))
	decls := parseStyle(raw)
	replaced := false
	for i := range decls {
		if decls[i][0] == key {
			decls[i][1] = value
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, [2]string{key, value})
	}
	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		if decl[1] == "" {
			continue
		}
		parts = append(parts, decl[0]+": "+decl[1])
	}
	if len(parts) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", strings.Join(parts, "; ")+";")
}

func parseStyle(raw string) [][2]string {
	var out [][2]string
	for _, chunk := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(chunk, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		out = append(out, [2]string{name, strings.TrimSpace(value)})
	}
	return out
}

func (e *Element) Query(selector string) dom.Element {
	found := e.doc.first(e.node, selector)
	if found == nil {
		return nil
	}
	return found
}

func (e *Element) QueryAll(selector string) []dom.Element {
	return e.doc.all(e.node, selector)
}

func (e *Element) Matches(selector string) bool {
	sel, ok := compile(selector)
	return ok && sel.Match(e.node)
}

func (e *Element) Closest(selector string) dom.Element {
	sel, ok := compile(selector)
	if !ok {
		return nil
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && sel.Match(n) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// Focus records e as the focused element without firing events; use
// Document.Focus to simulate a user.
func (e *Element) Focus() {
	e.doc.focused = e
}

func (e *Element) ScrollIntoView() {
	e.doc.scrolled = e
}
