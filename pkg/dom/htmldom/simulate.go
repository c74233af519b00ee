package htmldom

import (
	"strings"

	"github.com/goliatone/go-formgate/pkg/dom"
)

// Focus moves focus to target, blurring the previously focused element.
func (d *Document) Focus(target dom.Element) {
	el, ok := target.(*Element)
	if !ok || el == nil || el.doc != d {
		return
	}
	if d.focused == el {
		return
	}
	if prev := d.focused; prev != nil {
		d.focused = nil
		d.Dispatch(prev, dom.EventBlur)
	}
	d.focused = el
	d.Dispatch(el, dom.EventFocus)
}

// Blur removes focus from target.
func (d *Document) Blur(target dom.Element) {
	el, ok := target.(*Element)
	if !ok || el == nil || el.doc != d {
		return
	}
	if d.focused == el {
		d.focused = nil
	}
	d.Dispatch(el, dom.EventBlur)
}

// Type focuses target, replaces its value and fires input.
func (d *Document) Type(target dom.Element, value string) {
	if target == nil {
		return
	}
	d.Focus(target)
	target.SetValue(value)
	d.Dispatch(target, dom.EventInput)
}

// Click fires click at target and runs the default action: checkbox and
// radio inputs toggle and fire change; clicks inside a label activate the
// label's control. Deferred tasks are left queued for Flush.
func (d *Document) Click(target dom.Element) {
	if target == nil {
		return
	}
	ev := d.Dispatch(target, dom.EventClick)
	if ev.DefaultPrevented() {
		return
	}
	if isToggle(target) {
		if target.TagName() == "input" && inputType(target) == "radio" {
			if target.Checked() {
				return
			}
			target.SetChecked(true)
		} else {
			target.SetChecked(!target.Checked())
		}
		d.Dispatch(target, dom.EventChange)
		return
	}
	label := target.Closest("label")
	if label == nil {
		return
	}
	if control := d.labelControl(label); control != nil && control != target {
		d.Click(control)
	}
}

// Submit fires submit at form and reports whether the submission would go
// through.
func (d *Document) Submit(form dom.Element) bool {
	if form == nil {
		return false
	}
	ev := d.Dispatch(form, dom.EventSubmit)
	return !ev.DefaultPrevented()
}

func (d *Document) labelControl(label dom.Element) dom.Element {
	if id, ok := label.Attr("for"); ok && strings.TrimSpace(id) != "" {
		for _, candidate := range d.QueryAll("[id]") {
			if v, _ := candidate.Attr("id"); v == id {
				return candidate
			}
		}
		return nil
	}
	return label.Query("input, textarea, select")
}

func isToggle(el dom.Element) bool {
	if el.TagName() != "input" {
		return false
	}
	kind := inputType(el)
	return kind == "checkbox" || kind == "radio"
}

func inputType(el dom.Element) string {
	kind, _ := el.Attr("type")
	return strings.ToLower(strings.TrimSpace(kind))
}
