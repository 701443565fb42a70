package loadshape

import "errors"

// ErrEmptyProfile is returned when a profile with zero phases is built
// or sampled.
var ErrEmptyProfile = errors.New("load profile contains no phases")

// InvalidPhaseError reports a phase parameter that violates its
// constraint. It is detected when the phase is appended and surfaced by
// Builder.Build, so a malformed profile can never drive a running test.
type InvalidPhaseError struct {
	Kind    PhaseKind
	Field   string
	Message string
}

func (e *InvalidPhaseError) Error() string {
	return "invalid " + string(e.Kind) + " phase: field '" + e.Field + "': " + e.Message
}
