package application

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for the transport layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is an expected failure whose Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches another *Error of the same kind and message, so freshly built
// errors compare equal to the sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ValidationError builds a 400-class error with a human-readable message.
func ValidationError(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

var (
	ErrInvalidCredentials      = &Error{Kind: KindAuthentication, Message: "Invalid username or password"}
	ErrInvalidAdminCredentials = &Error{Kind: KindAuthentication, Message: "Invalid admin credentials"}
	ErrUnauthorized            = &Error{Kind: KindAuthorization, Message: "Unauthorized"}

	ErrUsernameTaken = &Error{Kind: KindConflict, Message: "Username already exists"}
	ErrEmailTaken    = &Error{Kind: KindConflict, Message: "Email already exists"}
	ErrSlugTaken     = &Error{Kind: KindConflict, Message: "Content for this page already exists"}

	ErrInvalidStatus = &Error{Kind: KindValidation, Message: "Invalid status"}

	ErrUserNotFound        = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrAdminNotFound       = &Error{Kind: KindNotFound, Message: "Admin not found"}
	ErrTaskNotFound        = &Error{Kind: KindNotFound, Message: "Task not found"}
	ErrTestimonialNotFound = &Error{Kind: KindNotFound, Message: "Testimonial not found"}
	ErrContentNotFound     = &Error{Kind: KindNotFound, Message: "Content not found"}
)

// KindOf returns the kind of err, or 0 when err is not an application error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
