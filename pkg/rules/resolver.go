package rules

import (
	"sort"
	"strings"
	"sync"
)

// Built-in matcher names registered by NewResolver.
const (
	MatcherCheckbox = "checkbox"
	MatcherPhone    = "phone"
	MatcherLength   = "length"
	MatcherEmail    = "email"
)

// Attributes exposes the declared configuration of a field. dom.Element
// satisfies it.
type Attributes interface {
	Attr(name string) (string, bool)
}

// Markers names the attributes that declare a rule on a field.
type Markers struct {
	Length   string
	Phone    string
	Checkbox string
}

// DefaultMarkers mirrors the builder's data attributes.
func DefaultMarkers() Markers {
	return Markers{
		Length:   "data-validate-length",
		Phone:    "data-validate-phone",
		Checkbox: "data-validate-checkbox",
	}
}

// Matcher returns a rule when it recognises the field's declaration.
type Matcher func(field Attributes, policy Policy) (Rule, bool)

type matcher struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Resolver picks exactly one rule for a field. Higher priority wins; ties
// fall back to registration order. Fields nothing matches carry no rule.
type Resolver struct {
	mu       sync.RWMutex
	policy   Policy
	matchers []matcher
}

// NewResolver builds a resolver with the built-in matchers registered for
// the supplied markers.
func NewResolver(markers Markers, policy Policy) *Resolver {
	r := &Resolver{policy: policy.WithDefaults()}
	r.registerBuiltins(markers)
	return r
}

// Policy returns the policy rules are parameterised with.
func (r *Resolver) Policy() Policy {
	if r == nil {
		return DefaultPolicy()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy
}

// Register adds a matcher. Empty names and nil matchers are ignored.
func (r *Resolver) Register(name string, priority int, fn Matcher) {
	if r == nil || fn == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matchers = append(r.matchers, matcher{
		name:     trimmed,
		priority: priority,
		match:    fn,
		order:    len(r.matchers),
	})
}

// Resolve returns the rule for field and the name of the matcher that
// produced it.
func (r *Resolver) Resolve(field Attributes) (Rule, string) {
	if r == nil || field == nil {
		return nil, ""
	}
	r.mu.RLock()
	if len(r.matchers) == 0 {
		r.mu.RUnlock()
		return nil, ""
	}
	matchers := append([]matcher(nil), r.matchers...)
	policy := r.policy
	r.mu.RUnlock()

	sort.SliceStable(matchers, func(i, j int) bool {
		if matchers[i].priority == matchers[j].priority {
			return matchers[i].order < matchers[j].order
		}
		return matchers[i].priority > matchers[j].priority
	})
	for _, entry := range matchers {
		if rule, ok := entry.match(field, policy); ok && rule != nil {
			return rule, entry.name
		}
	}
	return nil, ""
}

func (r *Resolver) registerBuiltins(markers Markers) {
	if markers.Checkbox != "" {
		r.Register(MatcherCheckbox, 40, func(field Attributes, _ Policy) (Rule, bool) {
			if _, ok := field.Attr(markers.Checkbox); !ok {
				return nil, false
			}
			return CheckboxRule{}, true
		})
	}
	if markers.Phone != "" {
		r.Register(MatcherPhone, 30, func(field Attributes, policy Policy) (Rule, bool) {
			if _, ok := field.Attr(markers.Phone); !ok {
				return nil, false
			}
			return PhoneRule{MinDigits: policy.PhoneMinimum()}, true
		})
	}
	if markers.Length != "" {
		r.Register(MatcherLength, 20, func(field Attributes, policy Policy) (Rule, bool) {
			raw, ok := field.Attr(markers.Length)
			if !ok {
				return nil, false
			}
			return LengthRule{Min: ParseMinimum(raw), Comparison: policy.LengthComparison}, true
		})
	}
	r.Register(MatcherEmail, 10, func(field Attributes, _ Policy) (Rule, bool) {
		kind, ok := field.Attr("type")
		if !ok || !strings.EqualFold(strings.TrimSpace(kind), "email") {
			return nil, false
		}
		return EmailRule{}, true
	})
}
