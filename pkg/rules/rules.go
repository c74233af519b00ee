package rules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the rule variant attached to a field.
type Kind string

const (
	KindNone     Kind = ""
	KindLength   Kind = "length"
	KindPhone    Kind = "phone"
	KindEmail    Kind = "email"
	KindCheckbox Kind = "checkbox"
)

// Comparison selects how LengthRule compares the trimmed length against its
// minimum.
type Comparison string

const (
	// Inclusive passes when len >= min.
	Inclusive Comparison = "inclusive"
	// Exclusive passes when len > min.
	Exclusive Comparison = "exclusive"
)

// Valid reports whether the comparison is a known value.
func (c Comparison) Valid() bool {
	return c == Inclusive || c == Exclusive
}

// Input is the snapshot of a field a rule evaluates.
type Input struct {
	Value   string
	Checked bool
}

// Rule is resolved once per field when a form is indexed. Implementations are
// value types so they can be compared in tests and logged.
type Rule interface {
	Kind() Kind
	Evaluate(in Input) bool
}

// LengthRule requires the trimmed value to reach Min runes.
type LengthRule struct {
	Min        int
	Comparison Comparison
}

func (LengthRule) Kind() Kind { return KindLength }

func (r LengthRule) Evaluate(in Input) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(in.Value))
	if r.Comparison == Exclusive {
		return n > r.Min
	}
	return n >= r.Min
}

// PhoneRule requires at least MinDigits digits once everything else is
// stripped.
type PhoneRule struct {
	MinDigits int
}

func (PhoneRule) Kind() Kind { return KindPhone }

func (r PhoneRule) Evaluate(in Input) bool {
	return utf8.RuneCountInString(Digits(in.Value)) >= r.MinDigits
}

// EmailPattern matches local@domain.tld shaped values without whitespace.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailRule is inferred from an input of type "email".
type EmailRule struct{}

func (EmailRule) Kind() Kind { return KindEmail }

func (EmailRule) Evaluate(in Input) bool {
	return EmailPattern.MatchString(in.Value)
}

// CheckboxRule passes iff the box is checked.
type CheckboxRule struct{}

func (CheckboxRule) Kind() Kind { return KindCheckbox }

func (CheckboxRule) Evaluate(in Input) bool {
	return in.Checked
}

// Digits strips every non-digit rune from value.
func Digits(value string) string {
	if value == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizePhone removes runes that are neither ASCII digits nor part of the
// allowed punctuation set.
func SanitizePhone(value, allowed string) string {
	if value == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if (r >= '0' && r <= '9') || strings.ContainsRune(allowed, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Evaluate applies rule to in. A nil rule always passes.
func Evaluate(rule Rule, in Input) bool {
	if rule == nil {
		return true
	}
	return rule.Evaluate(in)
}

// KindOf returns the kind of rule, or KindNone for nil.
func KindOf(rule Rule) Kind {
	if rule == nil {
		return KindNone
	}
	return rule.Kind()
}

func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
