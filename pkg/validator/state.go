package validator

// FieldID identifies a field within its form.
type FieldID string

// FieldState is the interaction state tracked for one field.
type FieldState struct {
	Touched bool
	Checked bool
}

// Registry holds per-field state for one form plus the form's force-show
// flag. Touched and forced only ever move from false to true.
type Registry struct {
	fields map[FieldID]*FieldState
	forced bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fields: make(map[FieldID]*FieldState)}
}

func (r *Registry) entry(id FieldID) *FieldState {
	if r.fields == nil {
		r.fields = make(map[FieldID]*FieldState)
	}
	st, ok := r.fields[id]
	if !ok {
		st = &FieldState{}
		r.fields[id] = st
	}
	return st
}

// Touch marks id as touched and reports whether this was the first time.
func (r *Registry) Touch(id FieldID) bool {
	if r == nil {
		return false
	}
	st := r.entry(id)
	if st.Touched {
		return false
	}
	st.Touched = true
	return true
}

// Touched reports whether id has been focused.
func (r *Registry) Touched(id FieldID) bool {
	if r == nil {
		return false
	}
	st, ok := r.fields[id]
	return ok && st.Touched
}

// SetChecked mirrors a checkbox's native checked state.
func (r *Registry) SetChecked(id FieldID, checked bool) {
	if r == nil {
		return
	}
	r.entry(id).Checked = checked
}

// Checked returns the mirrored checked state of id.
func (r *Registry) Checked(id FieldID) bool {
	if r == nil {
		return false
	}
	st, ok := r.fields[id]
	return ok && st.Checked
}

// Force requests that every error show regardless of touched state.
func (r *Registry) Force() {
	if r != nil {
		r.forced = true
	}
}

// Forced reports whether a force-show was requested.
func (r *Registry) Forced() bool {
	return r != nil && r.forced
}

// State returns a copy of the state for id.
func (r *Registry) State(id FieldID) FieldState {
	if r == nil {
		return FieldState{}
	}
	if st, ok := r.fields[id]; ok {
		return *st
	}
	return FieldState{}
}
