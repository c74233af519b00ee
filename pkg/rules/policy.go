package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults applied by DefaultPolicy.
const (
	DefaultPhoneMinDigits = 10
	DefaultPhoneAllowed   = "+-() ."
)

// Policy carries the tunables that differ between builder revisions. Both the
// length comparison and the phone threshold are deliberate configuration.
//
// PhoneMinDigits is a pointer so an explicit 0 (any digit count passes) can be
// told apart from an unset threshold. Use MinDigits to build one.
type Policy struct {
	LengthComparison Comparison `json:"lengthComparison" yaml:"length_comparison" env:"LENGTH_COMPARISON"`
	PhoneMinDigits   *int       `json:"phoneMinDigits,omitempty" yaml:"phone_min_digits" env:"PHONE_MIN_DIGITS"`
	PhoneAllowed     string     `json:"phoneAllowed" yaml:"phone_allowed" env:"PHONE_ALLOWED"`
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		LengthComparison: Inclusive,
		PhoneMinDigits:   MinDigits(DefaultPhoneMinDigits),
		PhoneAllowed:     DefaultPhoneAllowed,
	}
}

// MinDigits returns a phone threshold suitable for Policy.PhoneMinDigits.
func MinDigits(n int) *int {
	return &n
}

// PhoneMinimum reports the effective phone threshold, falling back to
// DefaultPhoneMinDigits when none is set.
func (p Policy) PhoneMinimum() int {
	if p.PhoneMinDigits == nil {
		return DefaultPhoneMinDigits
	}
	return *p.PhoneMinDigits
}

// WithDefaults fills unset settings from DefaultPolicy. PhoneAllowed is left
// alone when set, including to a single space, and an explicit zero phone
// threshold survives.
func (p Policy) WithDefaults() Policy {
	def := DefaultPolicy()
	if p.LengthComparison == "" {
		p.LengthComparison = def.LengthComparison
	}
	if p.PhoneMinDigits == nil {
		p.PhoneMinDigits = def.PhoneMinDigits
	}
	if p.PhoneAllowed == "" {
		p.PhoneAllowed = def.PhoneAllowed
	}
	return p
}

// Validate checks the policy for values no rule can work with.
func (p Policy) Validate() error {
	if p.LengthComparison != "" && !p.LengthComparison.Valid() {
		return fmt.Errorf("rules: unknown length comparison %q", p.LengthComparison)
	}
	if p.PhoneMinDigits != nil && *p.PhoneMinDigits < 0 {
		return fmt.Errorf("rules: phone minimum digits must not be negative, got %d", *p.PhoneMinDigits)
	}
	return nil
}

// ParseComparison maps configuration strings onto a Comparison. Operator
// spellings are accepted alongside the names.
func ParseComparison(raw string) (Comparison, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "inclusive", ">=", "gte":
		return Inclusive, nil
	case "exclusive", ">", "gt":
		return Exclusive, nil
	default:
		return "", fmt.Errorf("rules: unknown length comparison %q", raw)
	}
}

// UnmarshalText lets yaml, json and env decoders accept operator spellings.
func (c *Comparison) UnmarshalText(text []byte) error {
	parsed, err := ParseComparison(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseMinimum reads a length attribute. Anything that is not a non-negative
// integer yields 0.
func ParseMinimum(raw string) int {
	if isBlank(raw) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
