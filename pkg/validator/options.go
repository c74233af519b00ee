package validator

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formgate/pkg/markup"
	"github.com/goliatone/go-formgate/pkg/rules"
	"github.com/goliatone/go-formgate/pkg/visibility"
)

// Option customises a Validator.
type Option func(*Validator)

// WithContract sets the markup contract. Empty fields fall back to the
// defaults.
func WithContract(contract markup.Contract) Option {
	return func(v *Validator) {
		v.contract = contract.WithDefaults()
	}
}

// WithPolicy sets the rule policy used by the built-in resolver.
func WithPolicy(policy rules.Policy) Option {
	return func(v *Validator) {
		v.policy = policy.WithDefaults()
	}
}

// WithResolver replaces the built-in resolver. The resolver's policy is used
// for phone sanitizing.
func WithResolver(resolver *rules.Resolver) Option {
	return func(v *Validator) {
		v.resolver = resolver
	}
}

// WithVisibility replaces the error visibility evaluator.
func WithVisibility(evaluator visibility.Evaluator) Option {
	return func(v *Validator) {
		if evaluator != nil {
			v.visibility = evaluator
		}
	}
}

// WithSanitizer replaces the function applied to custom error text before it
// is written into a label.
func WithSanitizer(fn func(string) string) Option {
	return func(v *Validator) {
		if fn != nil {
			v.sanitize = fn
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// WithDeferredCheckboxClick controls whether clicks on a checkbox visual
// schedule a revalidation one macrotask later. The builder's click handler
// updates the native checked state after the click listeners run, so the
// deferral is what lets validation observe the new state when the builder
// does not emit change. Enabled by default.
func WithDeferredCheckboxClick(enabled bool) Option {
	return func(v *Validator) {
		v.deferCheckboxClick = enabled
	}
}
