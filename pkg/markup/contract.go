package markup

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"github.com/hay-kot/criterio"

	"github.com/goliatone/go-formgate/pkg/rules"
)

// Contract captures the page builder's markup conventions: where forms,
// wrappers, fields, error labels and submit controls live, which classes the
// validator toggles, and which attributes declare rules.
type Contract struct {
	FormSelector           string `json:"formSelector" yaml:"form_selector"`
	WrapperSelector        string `json:"wrapperSelector" yaml:"wrapper_selector"`
	FieldSelector          string `json:"fieldSelector" yaml:"field_selector"`
	ErrorLabelSelector     string `json:"errorLabelSelector" yaml:"error_label_selector"`
	SubmitSelector         string `json:"submitSelector" yaml:"submit_selector"`
	CheckboxVisualSelector string `json:"checkboxVisualSelector" yaml:"checkbox_visual_selector"`

	ErrorClass             string `json:"errorClass" yaml:"error_class"`
	CheckboxErrorClass     string `json:"checkboxErrorClass" yaml:"checkbox_error_class"`
	SubmitDisabledClass    string `json:"submitDisabledClass" yaml:"submit_disabled_class"`
	RedirectedCheckedClass string `json:"redirectedCheckedClass" yaml:"redirected_checked_class"`

	LengthAttr    string `json:"lengthAttr" yaml:"length_attr"`
	PhoneAttr     string `json:"phoneAttr" yaml:"phone_attr"`
	CheckboxAttr  string `json:"checkboxAttr" yaml:"checkbox_attr"`
	ErrorTextAttr string `json:"errorTextAttr" yaml:"error_text_attr"`
}

// Default returns the conventions of the builder's stock form component.
func Default() Contract {
	markers := rules.DefaultMarkers()
	return Contract{
		FormSelector:           ".w-form form",
		WrapperSelector:        ".form-field-wrapper",
		FieldSelector:          `input:not([type="submit"]):not([type="hidden"]), textarea`,
		ErrorLabelSelector:     ".form-field-error",
		SubmitSelector:         `[type="submit"]`,
		CheckboxVisualSelector: ".w-checkbox-input",

		ErrorClass:             "is-error",
		CheckboxErrorClass:     "is-error",
		SubmitDisabledClass:    "is-disabled",
		RedirectedCheckedClass: "w--redirected-checked",

		LengthAttr:    markers.Length,
		PhoneAttr:     markers.Phone,
		CheckboxAttr:  markers.Checkbox,
		ErrorTextAttr: "data-error-text",
	}
}

// Markers returns the rule-declaring attribute names.
func (c Contract) Markers() rules.Markers {
	return rules.Markers{
		Length:   c.LengthAttr,
		Phone:    c.PhoneAttr,
		Checkbox: c.CheckboxAttr,
	}
}

// Merge returns c with every non-empty field of override applied.
func (c Contract) Merge(override Contract) Contract {
	src := override.fields()
	for key, dst := range c.fields() {
		if v := *src[key]; v != "" {
			*dst = v
		}
	}
	return c
}

// WithDefaults fills empty fields from Default.
func (c Contract) WithDefaults() Contract {
	return Default().Merge(c)
}

// fields maps token keys onto the contract's string fields.
func (c *Contract) fields() map[string]*string {
	return map[string]*string{
		"form":                     &c.FormSelector,
		"wrapper":                  &c.WrapperSelector,
		"field":                    &c.FieldSelector,
		"error-label":              &c.ErrorLabelSelector,
		"submit":                   &c.SubmitSelector,
		"checkbox-visual":          &c.CheckboxVisualSelector,
		"error-class":              &c.ErrorClass,
		"checkbox-error-class":     &c.CheckboxErrorClass,
		"submit-disabled-class":    &c.SubmitDisabledClass,
		"redirected-checked-class": &c.RedirectedCheckedClass,
		"attr.length":              &c.LengthAttr,
		"attr.phone":               &c.PhoneAttr,
		"attr.checkbox":            &c.CheckboxAttr,
		"attr.error-text":          &c.ErrorTextAttr,
	}
}

// Validate reports missing conventions and selectors the matcher cannot
// compile. Optional pieces (checkbox visual, error text attribute, checkbox
// marker, redirected class) may be empty.
func (c Contract) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("form_selector", c.FormSelector, selector),
		criterio.Run("wrapper_selector", c.WrapperSelector, selector),
		criterio.Run("field_selector", c.FieldSelector, selector),
		criterio.Run("error_label_selector", c.ErrorLabelSelector, selector),
		criterio.Run("submit_selector", c.SubmitSelector, selector),
		criterio.Run("checkbox_visual_selector", c.CheckboxVisualSelector, optionalSelector),
		criterio.Run("error_class", c.ErrorClass, required),
		criterio.Run("submit_disabled_class", c.SubmitDisabledClass, required),
	)
}

func required(value string) error {
	if value == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func selector(value string) error {
	if err := required(value); err != nil {
		return err
	}
	return optionalSelector(value)
}

func optionalSelector(value string) error {
	if value == "" {
		return nil
	}
	if _, err := cascadia.Compile(value); err != nil {
		return fmt.Errorf("invalid selector %q: %w", value, err)
	}
	return nil
}
