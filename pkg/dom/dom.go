// Package dom describes the slice of a page environment the validator needs:
// querying elements, mutating classes and styles, registering listeners and
// deferring work by one macrotask. Browsers are the usual host; htmldom
// provides a headless implementation over parsed HTML.
package dom

// Event names the validator listens for.
const (
	EventFocus  = "focus"
	EventInput  = "input"
	EventBlur   = "blur"
	EventChange = "change"
	EventClick  = "click"
	EventSubmit = "submit"
)

// Element is a node in the page. Query methods accept CSS selectors and
// return nil or an empty slice when nothing matches.
type Element interface {
	TagName() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)

	Value() string
	SetValue(value string)
	Checked() bool
	SetChecked(checked bool)

	Text() string
	SetText(text string)
	SetStyle(property, value string)
	Style(property string) string

	Query(selector string) Element
	QueryAll(selector string) []Element
	Matches(selector string) bool
	Closest(selector string) Element

	Focus()
	ScrollIntoView()
}

// Handler receives dispatched events.
type Handler func(ev *Event)

// Document is the page-level entry point.
type Document interface {
	Query(selector string) Element
	QueryAll(selector string) []Element
	On(target Element, event string, handler Handler)
	// Defer runs fn after the current event has finished dispatching and
	// every listener queued ahead of it has run.
	Defer(fn func())
}

// Event is passed to handlers. Target is the element the event was fired on.
type Event struct {
	Type   string
	Target Element

	prevented bool
	stopped   bool
}

// NewEvent builds an event for dispatch.
func NewEvent(kind string, target Element) *Event {
	return &Event{Type: kind, Target: target}
}

// PreventDefault cancels the default action (form submission, checkbox toggle).
func (e *Event) PreventDefault() {
	if e != nil {
		e.prevented = true
	}
}

// DefaultPrevented reports whether a handler cancelled the default action.
func (e *Event) DefaultPrevented() bool {
	return e != nil && e.prevented
}

// StopPropagation keeps the event from reaching ancestors.
func (e *Event) StopPropagation() {
	if e != nil {
		e.stopped = true
	}
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e != nil && e.stopped
}

// ToggleClass adds name when on is true and removes it otherwise.
func ToggleClass(el Element, name string, on bool) {
	if el == nil || name == "" {
		return
	}
	if on {
		el.AddClass(name)
		return
	}
	el.RemoveClass(name)
}

// SetVisible shows or hides el through its display style.
func SetVisible(el Element, visible bool) {
	if el == nil {
		return
	}
	if visible {
		el.SetStyle("display", "block")
		return
	}
	el.SetStyle("display", "none")
}

// Visible reports whether el is not hidden through its display style.
func Visible(el Element) bool {
	return el != nil && el.Style("display") != "none"
}
