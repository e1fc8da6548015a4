package insights

import "errors"

var (
	ErrMissingQuestion = errors.New("Question is required")
	ErrMissingSymptoms = errors.New("Symptoms are required")
	ErrNotFound        = errors.New("not found")
)

// Error lleva el mensaje que ve el cliente y el tipo (Kind) que mira el handler para elegir status.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

var (
	errNoHistory      = &Error{Kind: ErrNotFound, Msg: "No medical history found for this patient"}
	errNoVaccinations = &Error{Kind: ErrNotFound, Msg: "No vaccination history found for this student"}
	errNoDoctor       = &Error{Kind: ErrNotFound, Msg: "Doctor not found"}
)
