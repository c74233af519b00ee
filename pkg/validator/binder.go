package validator

import (
	"github.com/goliatone/go-formgate/pkg/dom"
	"github.com/goliatone/go-formgate/pkg/rules"
)

// Bind indexes form, runs the silent initial pass and wires listeners on doc.
// Errors stay hidden until a field is touched or a submit is attempted.
func (v *Validator) Bind(doc dom.Document, form dom.Element) *Form {
	f := v.Index(form)
	if doc == nil || form == nil {
		return f
	}

	for _, field := range f.Fields {
		if field.Kind() == rules.KindCheckbox {
			f.syncCheckbox(field)
		}
	}
	f.ValidateSilently()

	for _, field := range f.Fields {
		f.bindField(doc, field)
	}
	doc.On(form, dom.EventSubmit, f.onSubmit)

	v.logger.Debug().Int("fields", len(f.Fields)).Msg("form bound")
	return f
}

func (f *Form) bindField(doc dom.Document, field *Field) {
	doc.On(field.Input, dom.EventFocus, func(*dom.Event) {
		f.touch(field)
		f.Validate()
	})

	doc.On(field.Input, dom.EventInput, func(*dom.Event) {
		if field.Kind() == rules.KindPhone {
			f.sanitizePhone(field)
		}
		f.Validate()
	})

	doc.On(field.Input, dom.EventBlur, func(*dom.Event) {
		f.Validate()
	})

	if field.Kind() != rules.KindCheckbox {
		return
	}

	// change is the completion signal for the native toggle and is handled
	// immediately.
	doc.On(field.Input, dom.EventChange, func(*dom.Event) {
		f.touch(field)
		f.syncCheckbox(field)
		f.Validate()
	})

	// The builder's click handler on the visual runs after ours and only
	// then updates the native state, so the revalidation waits one macrotask.
	if field.Visual != nil && f.validator.deferCheckboxClick {
		doc.On(field.Visual, dom.EventClick, func(*dom.Event) {
			doc.Defer(func() {
				f.syncCheckbox(field)
				f.Validate()
			})
		})
	}
}

func (f *Form) onSubmit(ev *dom.Event) {
	report := f.Forcing()
	if report.Valid {
		f.validator.logger.Debug().Msg("form submission allowed")
		return
	}
	ev.PreventDefault()

	field, target := f.firstErrorTarget()
	if target != nil {
		target.ScrollIntoView()
		if field.Input != nil {
			field.Input.Focus()
		}
	}
	f.validator.logger.Info().
		Str("first_error", string(report.FirstError)).
		Msg("form submission blocked")
}

// touch marks field touched. Checkbox changes count as touching because a
// label click toggles the box without focusing it.
func (f *Form) touch(field *Field) {
	if f.state.Touch(field.ID) {
		f.validator.logger.Trace().Str("field", string(field.ID)).Msg("field touched")
	}
}

func (f *Form) sanitizePhone(field *Field) {
	value := field.Input.Value()
	cleaned := rules.SanitizePhone(value, f.validator.policy.PhoneAllowed)
	if cleaned != value {
		field.Input.SetValue(cleaned)
	}
}
