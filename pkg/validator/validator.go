package validator

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formgate/pkg/dom"
	"github.com/goliatone/go-formgate/pkg/markup"
	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/visibility"
)

// Validator indexes and binds forms according to a markup contract. It holds
// no per-form state and can be reused across documents.
type Validator struct {
	contract           markup.Contract
	policy             rules.Policy
	resolver           *rules.Resolver
	visibility         visibility.Evaluator
	sanitize           func(string) string
	logger             zerolog.Logger
	deferCheckboxClick bool
}

// New constructs a Validator. Missing collaborators get the built-in
// implementations: default contract and policy, a resolver for the
// contract's markers, the touched-or-forced visibility rule and the
// tag-stripping error text sanitizer.
func New(options ...Option) *Validator {
	v := &Validator{
		contract:           markup.Default(),
		policy:             rules.DefaultPolicy(),
		visibility:         visibility.Default,
		sanitize:           SanitizeErrorText,
		logger:             zerolog.Nop(),
		deferCheckboxClick: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	if v.resolver == nil {
		v.resolver = rules.NewResolver(v.contract.Markers(), v.policy)
	} else {
		v.policy = v.resolver.Policy()
	}
	return v
}

// Contract returns the markup contract in use.
func (v *Validator) Contract() markup.Contract { return v.contract }

// Policy returns the rule policy in use.
func (v *Validator) Policy() rules.Policy { return v.policy }

// Index resolves the fields of form without touching the page. Wrappers with
// no field inside are skipped.
func (v *Validator) Index(form dom.Element) *Form {
	f := &Form{
		Element:   form,
		validator: v,
		state:     NewRegistry(),
		byID:      make(map[FieldID]*Field),
	}
	if form == nil {
		return f
	}
	f.Submit = form.Query(v.contract.SubmitSelector)

	seen := make(map[FieldID]int)
	for pos, wrapper := range form.QueryAll(v.contract.WrapperSelector) {
		input := wrapper.Query(v.contract.FieldSelector)
		if input == nil {
			v.logger.Debug().Int("wrapper", pos).Msg("wrapper has no field, skipping")
			continue
		}
		rule, matcher := v.resolver.Resolve(input)
		field := &Field{
			ID:      uniqueID(fieldID(input, pos), seen),
			Wrapper: wrapper,
			Input:   input,
			Rule:    rule,
			Matcher: matcher,
			Label:   wrapper.Query(v.contract.ErrorLabelSelector),
		}
		if rules.KindOf(rule) == rules.KindCheckbox && v.contract.CheckboxVisualSelector != "" {
			field.Visual = wrapper.Query(v.contract.CheckboxVisualSelector)
		}
		f.Fields = append(f.Fields, field)
		f.byID[field.ID] = field
	}

	v.logger.Debug().Int("fields", len(f.Fields)).Msg("form indexed")
	return f
}

// Attach binds every form in doc that matches the contract's form selector.
func (v *Validator) Attach(doc dom.Document) []*Form {
	if doc == nil {
		return nil
	}
	elements := doc.QueryAll(v.contract.FormSelector)
	forms := make([]*Form, 0, len(elements))
	for _, el := range elements {
		forms = append(forms, v.Bind(doc, el))
	}
	return forms
}

func fieldID(input dom.Element, pos int) FieldID {
	for _, attr := range []string{"id", "name"} {
		if value, ok := input.Attr(attr); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return FieldID(trimmed)
			}
		}
	}
	return FieldID(fmt.Sprintf("field-%d", pos))
}

func uniqueID(id FieldID, seen map[FieldID]int) FieldID {
	n := seen[id]
	seen[id] = n + 1
	if n == 0 {
		return id
	}
	return FieldID(fmt.Sprintf("%s#%d", id, n+1))
}
