package visibility

// Evaluator decides whether a field's error chrome may be shown given its
// verdict and interaction state.
type Evaluator interface {
	Eval(fieldID string, valid bool, ctx Context) bool
}

// Context carries the interaction state of one field. Touched flips on the
// first focus and never resets; Forced is set once a submission attempt asks
// every error to show.
type Context struct {
	Touched bool
	Forced  bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldID string, valid bool, ctx Context) bool

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldID string, valid bool, ctx Context) bool {
	return fn(fieldID, valid, ctx)
}

// Default shows an error iff the field failed and the user touched it or a
// force-show was requested.
var Default Evaluator = EvaluatorFunc(func(_ string, valid bool, ctx Context) bool {
	return !valid && (ctx.Touched || ctx.Forced)
})

// Never suppresses every error; the validator uses it for the silent pass on
// page load.
var Never Evaluator = EvaluatorFunc(func(string, bool, Context) bool { return false })
