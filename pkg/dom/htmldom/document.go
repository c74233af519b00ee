package htmldom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formgate/pkg/dom"
)

var _ dom.Document = (*Document)(nil)

// Document is a headless page: parsed HTML, listeners keyed by node, and a
// macrotask queue drained by Flush. Dispatch is synchronous and runs on the
// caller's goroutine, so a Document must not be shared across goroutines.
type Document struct {
	root      *html.Node
	elements  map[*html.Node]*Element
	listeners map[*html.Node]map[string][]dom.Handler
	tasks     []func()

	focused  *Element
	scrolled *Element
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse: %w", err)
	}
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[*html.Node]map[string][]dom.Handler),
	}, nil
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Query returns the first element matching selector in document order.
func (d *Document) Query(selector string) dom.Element {
	el := d.first(d.root, selector)
	if el == nil {
		return nil
	}
	return el
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) []dom.Element {
	return d.all(d.root, selector)
}

// On registers handler for event on target. Targets from another document
// are ignored.
func (d *Document) On(target dom.Element, event string, handler dom.Handler) {
	el, ok := target.(*Element)
	if !ok || el == nil || el.doc != d || handler == nil {
		return
	}
	byType, ok := d.listeners[el.node]
	if !ok {
		byType = make(map[string][]dom.Handler)
		d.listeners[el.node] = byType
	}
	byType[event] = append(byType[event], handler)
}

// Defer queues fn as a macrotask.
func (d *Document) Defer(fn func()) {
	if fn == nil {
		return
	}
	d.tasks = append(d.tasks, fn)
}

// Pending reports how many macrotasks are queued.
func (d *Document) Pending() int {
	return len(d.tasks)
}

// Flush runs queued macrotasks in order, including tasks queued while
// flushing.
func (d *Document) Flush() {
	for len(d.tasks) > 0 {
		task := d.tasks[0]
		d.tasks[0] = nil
		d.tasks = d.tasks[1:]
		task()
	}
}

// Dispatch fires an event of the given type at target. focus and blur stay on
// the target; other events bubble through ancestors.
func (d *Document) Dispatch(target dom.Element, kind string) *dom.Event {
	ev := dom.NewEvent(kind, target)
	el, ok := target.(*Element)
	if !ok || el == nil || el.doc != d {
		return ev
	}
	for node := el.node; node != nil; node = node.Parent {
		for _, handler := range d.listeners[node][kind] {
			handler(ev)
		}
		if ev.PropagationStopped() || !bubbles(kind) {
			break
		}
	}
	return ev
}

func bubbles(kind string) bool {
	return kind != dom.EventFocus && kind != dom.EventBlur
}

// Focused returns the element that last received focus.
func (d *Document) Focused() dom.Element {
	if d.focused == nil {
		return nil
	}
	return d.focused
}

// ScrollTarget returns the element last scrolled into view.
func (d *Document) ScrollTarget() dom.Element {
	if d.scrolled == nil {
		return nil
	}
	return d.scrolled
}

// Render writes the current document as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("htmldom: render: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) wrap(node *html.Node) *Element {
	if node == nil {
		return nil
	}
	if el, ok := d.elements[node]; ok {
		return el
	}
	el := &Element{doc: d, node: node}
	d.elements[node] = el
	return el
}

func (d *Document) first(scope *html.Node, selector string) *Element {
	sel, ok := compile(selector)
	if !ok || scope == nil {
		return nil
	}
	var found *html.Node
	walk(scope, func(n *html.Node) bool {
		if sel.Match(n) {
			found = n
			return false
		}
		return true
	})
	return d.wrap(found)
}

func (d *Document) all(scope *html.Node, selector string) []dom.Element {
	sel, ok := compile(selector)
	if !ok || scope == nil {
		return nil
	}
	var out []dom.Element
	walk(scope, func(n *html.Node) bool {
		if sel.Match(n) {
			out = append(out, d.wrap(n))
		}
		return true
	})
	return out
}

// walk visits element descendants of scope (not scope itself) in document
// order until visit returns false.
func walk(scope *html.Node, visit func(*html.Node) bool) {
	var rec func(*html.Node) bool
	rec = func(n *html.Node) bool {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && !visit(child) {
				return false
			}
			if !rec(child) {
				return false
			}
		}
		return true
	}
	rec(scope)
}

var (
	selectorMu    sync.Mutex
	selectorCache = map[string]cascadia.Selector{}
)

func compile(selector string) (cascadia.Selector, bool) {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return nil, false
	}
	selectorMu.Lock()
	defer selectorMu.Unlock()
	if sel, ok := selectorCache[trimmed]; ok {
		return sel, sel != nil
	}
	sel, err := cascadia.Compile(trimmed)
	if err != nil {
		selectorCache[trimmed] = nil
		return nil, false
	}
	selectorCache[trimmed] = sel
	return sel, true
}
