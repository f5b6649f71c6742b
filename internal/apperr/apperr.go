// Package apperr classifies service errors so the HTTP layer can map them
// to response codes without inspecting storage errors.
package apperr

import "errors"

type Kind string

const (
	KindValidation Kind = "validation"
	KindPermission Kind = "permission"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindPayment    Kind = "payment"
	KindInternal   Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
