package domain

import "errors"

// Error kinds. Match with errors.Is against any error returned by a service.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrDenied       = errors.New("access denied")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
)

// Error is a typed failure carrying one of the kinds above and a message that is safe to
// show to the caller. Err holds the underlying cause, if any.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidInput(msg string) error { return &Error{Kind: ErrInvalidInput, Message: msg} }
func NotFound(msg string) error     { return &Error{Kind: ErrNotFound, Message: msg} }
func Forbidden(msg string) error    { return &Error{Kind: ErrForbidden, Message: msg} }
func Denied(reason string) error    { return &Error{Kind: ErrDenied, Message: reason} }
func Conflict(msg string) error     { return &Error{Kind: ErrConflict, Message: msg} }

// Unavailable wraps a collaborator failure. op names the call that failed.
func Unavailable(op string, err error) error {
	return &Error{Kind: ErrUnavailable, Message: op, Err: err}
}

// Message returns the caller-facing message of err. For errors that are not *Error the
// full error text is returned.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
