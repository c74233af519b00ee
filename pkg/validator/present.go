package validator

import (
	"strings"

	"github.com/goliatone/go-formgate/pkg/dom"
	"github.com/goliatone/go-formgate/pkg/rules"
)

// present shows or hides the error chrome of field. Fields without a label
// still get the error class.
func (f *Form) present(field *Field, show bool) {
	target, class := f.errorTarget(field)
	dom.ToggleClass(target, class, show)

	if field.Label == nil {
		return
	}
	if show {
		if text := f.errorText(field); text != "" {
			field.Label.SetText(text)
		}
	}
	dom.SetVisible(field.Label, show)
}

// errorTarget picks the element that receives the error class: the checkbox
// visual for checkbox fields that have one, the field itself otherwise.
func (f *Form) errorTarget(field *Field) (dom.Element, string) {
	contract := f.validator.contract
	if field.Kind() == rules.KindCheckbox && field.Visual != nil {
		class := contract.CheckboxErrorClass
		if class == "" {
			class = contract.ErrorClass
		}
		return field.Visual, class
	}
	return field.Input, contract.ErrorClass
}

// errorText reads custom error text from the label, then the field.
func (f *Form) errorText(field *Field) string {
	attr := f.validator.contract.ErrorTextAttr
	if attr == "" {
		return ""
	}
	for _, el := range []dom.Element{field.Label, field.Input} {
		if el == nil {
			continue
		}
		if raw, ok := el.Attr(attr); ok {
			if text := strings.TrimSpace(f.validator.sanitize(raw)); text != "" {
				return text
			}
		}
	}
	return ""
}

// syncCheckbox mirrors the native checked state into the registry and
// aligns the builder's redirected-checked class on the visual with it.
func (f *Form) syncCheckbox(field *Field) {
	if field.Input == nil {
		return
	}
	checked := field.Input.Checked()
	f.state.SetChecked(field.ID, checked)
	dom.ToggleClass(field.Visual, f.validator.contract.RedirectedCheckedClass, checked)
}
