package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formgate/pkg/dom"
	"github.com/goliatone/go-formgate/pkg/dom/htmldom"
	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/validator"
)

// DefaultAttempts is how many times a field is asked for before its invalid
// value is kept.
const DefaultAttempts = 3

// Outcome is the result of an interactive fill.
type Outcome struct {
	Submitted bool
	Report    validator.Report
}

// Fill asks driver for every field of form, replays the answers as user
// events on doc and finally submits. Fields whose error shows after an answer
// are asked again, up to attempts times.
func Fill(ctx context.Context, driver Driver, doc *htmldom.Document, form *validator.Form, attempts int) (Outcome, error) {
	if driver == nil || doc == nil || form == nil {
		return Outcome{}, fmt.Errorf("prompt: driver, document and form are required")
	}
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	for _, field := range form.Fields {
		if err := fillField(ctx, driver, doc, form, field, attempts); err != nil {
			return Outcome{}, err
		}
	}

	submitted := doc.Submit(form.Element)
	doc.Flush()
	return Outcome{Submitted: submitted, Report: form.Validate()}, nil
}

func fillField(ctx context.Context, driver Driver, doc *htmldom.Document, form *validator.Form, field *validator.Field, attempts int) error {
	for attempt := 1; ; attempt++ {
		if err := ask(ctx, driver, doc, field); err != nil {
			return err
		}
		result := form.ValidateField(field)
		if !result.Visible {
			return nil
		}
		if attempt >= attempts {
			return driver.Info(ctx, fmt.Sprintf("keeping invalid value for %s", field.ID))
		}
		if err := driver.Info(ctx, fmt.Sprintf("%s: %s", field.ID, errorMessage(field))); err != nil {
			return err
		}
	}
}

func ask(ctx context.Context, driver Driver, doc *htmldom.Document, field *validator.Field) error {
	message := string(field.ID)
	if field.Kind() != rules.KindNone {
		message = fmt.Sprintf("%s (%s)", field.ID, field.Kind())
	}

	if field.Kind() == rules.KindCheckbox {
		want, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Default: field.Input.Checked()})
		if err != nil {
			return err
		}
		doc.Focus(field.Input)
		if want != field.Input.Checked() {
			target := field.Visual
			if target == nil {
				target = field.Input
			}
			doc.Click(target)
			doc.Flush()
		}
		doc.Blur(field.Input)
		return nil
	}

	var (
		value string
		err   error
	)
	if field.Input.TagName() == "textarea" {
		value, err = driver.TextArea(ctx, TextAreaConfig{Message: message, Default: field.Input.Value()})
	} else {
		value, err = driver.Input(ctx, InputConfig{Message: message, Default: field.Input.Value()})
	}
	if err != nil {
		return err
	}
	doc.Type(field.Input, value)
	doc.Blur(field.Input)
	return nil
}

func errorMessage(field *validator.Field) string {
	if field.Label != nil && dom.Visible(field.Label) {
		if text := field.Label.Text(); text != "" {
			return text
		}
	}
	return "invalid value"
}
