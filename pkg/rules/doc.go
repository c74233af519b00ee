// Package rules holds the per-field rule variants (length, phone, email,
// checkbox) and the resolver that turns a field's declared attributes into
// exactly one of them. Rules are pure: they see an Input snapshot and return a
// verdict, leaving presentation and state to the validator package.
package rules
