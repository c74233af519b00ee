package validator

import (
	"github.com/goliatone/go-formgate/pkg/dom"
	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/visibility"
)

// Field is one indexed form field. Label and Visual are nil when the wrapper
// does not carry them.
type Field struct {
	ID      FieldID
	Wrapper dom.Element
	Input   dom.Element
	Rule    rules.Rule
	Matcher string
	Label   dom.Element
	Visual  dom.Element
}

// Kind returns the kind of the field's rule.
func (f *Field) Kind() rules.Kind {
	return rules.KindOf(f.Rule)
}

// FieldResult is the outcome of validating one field.
type FieldResult struct {
	ID      FieldID    `json:"id"`
	Kind    rules.Kind `json:"kind,omitempty"`
	Value   string     `json:"value,omitempty"`
	Valid   bool       `json:"valid"`
	Visible bool       `json:"visible"`
	Touched bool       `json:"touched"`
}

// Report is the folded outcome of validating a whole form.
type Report struct {
	Valid  bool          `json:"valid"`
	Forced bool          `json:"forced"`
	Fields []FieldResult `json:"fields"`
	// FirstError is the first field, in document order, whose error chrome is
	// visible. Empty when none is.
	FirstError FieldID `json:"firstError,omitempty"`
}

// Form is an indexed form with its interaction state.
type Form struct {
	Element dom.Element
	Submit  dom.Element
	Fields  []*Field

	validator *Validator
	state     *Registry
	byID      map[FieldID]*Field
}

// State exposes the form's registry.
func (f *Form) State() *Registry { return f.state }

// Field looks up a field by id.
func (f *Form) Field(id FieldID) (*Field, bool) {
	field, ok := f.byID[id]
	return field, ok
}

// Evaluate returns the verdict for field without presenting it.
func (f *Form) Evaluate(field *Field) bool {
	if field == nil || field.Input == nil {
		return true
	}
	in := rules.Input{Value: field.Input.Value(), Checked: field.Input.Checked()}
	if field.Kind() == rules.KindCheckbox {
		f.state.SetChecked(field.ID, in.Checked)
	}
	return rules.Evaluate(field.Rule, in)
}

// ValidateField evaluates and presents a single field.
func (f *Form) ValidateField(field *Field) FieldResult {
	return f.validateField(field, f.validator.visibility)
}

// Validate evaluates and presents every field, folds the verdicts and
// toggles the submit control. Running it twice without changes yields the
// same report and leaves the page unchanged.
func (f *Form) Validate() Report {
	return f.run(f.validator.visibility)
}

// ValidateSilently folds verdicts and toggles the submit control while
// keeping every error hidden.
func (f *Form) ValidateSilently() Report {
	return f.run(visibility.Never)
}

// Forcing requests force-show and validates, as a submission attempt does.
func (f *Form) Forcing() Report {
	f.state.Force()
	return f.Validate()
}

func (f *Form) run(evaluator visibility.Evaluator) Report {
	report := Report{
		Valid:  true,
		Forced: f.state.Forced(),
		Fields: make([]FieldResult, 0, len(f.Fields)),
	}
	for _, field := range f.Fields {
		result := f.validateField(field, evaluator)
		report.Valid = report.Valid && result.Valid
		if result.Visible && report.FirstError == "" {
			report.FirstError = field.ID
		}
		report.Fields = append(report.Fields, result)
	}
	f.toggleSubmit(report.Valid)

	f.validator.logger.Debug().
		Bool("valid", report.Valid).
		Bool("forced", report.Forced).
		Str("first_error", string(report.FirstError)).
		Msg("form validated")
	return report
}

func (f *Form) validateField(field *Field, evaluator visibility.Evaluator) FieldResult {
	valid := f.Evaluate(field)
	ctx := visibility.Context{
		Touched: f.state.Touched(field.ID),
		Forced:  f.state.Forced(),
	}
	visible := evaluator.Eval(string(field.ID), valid, ctx)
	f.present(field, visible)

	f.validator.logger.Trace().
		Str("field", string(field.ID)).
		Str("rule", string(field.Kind())).
		Bool("valid", valid).
		Bool("visible", visible).
		Msg("field validated")

	result := FieldResult{
		ID:      field.ID,
		Kind:    field.Kind(),
		Valid:   valid,
		Visible: visible,
		Touched: ctx.Touched,
	}
	if field.Input != nil && field.Kind() != rules.KindCheckbox {
		result.Value = field.Input.Value()
	}
	return result
}

func (f *Form) toggleSubmit(valid bool) {
	dom.ToggleClass(f.Submit, f.validator.contract.SubmitDisabledClass, !valid)
}

// firstErrorTarget returns the first element, in field order, that carries
// the error style.
func (f *Form) firstErrorTarget() (*Field, dom.Element) {
	for _, field := range f.Fields {
		target, class := f.errorTarget(field)
		if target != nil && class != "" && target.HasClass(class) {
			return field, target
		}
	}
	return nil, nil
}
