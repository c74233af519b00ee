// Package validator attaches rule evaluation, error presentation and submit
// gating to builder forms.
//
// A form is indexed once: every wrapper's field gets its rule resolved, its
// error label and (for checkboxes) its visual located. Per-field interaction
// state lives in a form-scoped Registry. Error chrome for a field is visible
// iff its rule failed and the field was touched or a submission attempt
// forced errors to show.
//
// All handlers run synchronously on the page's event loop; a Form must only be
// used from that loop.
package validator
