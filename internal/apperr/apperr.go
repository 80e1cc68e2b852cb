package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for transport mapping.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindAuth       Kind = "UNAUTHORIZED"
	KindNotFound   Kind = "NOT_FOUND"
	KindUpstream   Kind = "UPSTREAM"
	KindInternal   Kind = "INTERNAL"
)

// Kind sentinels. errors.Is(err, ErrNotFound) reports whether err is any
// not-found application error, regardless of its message.
var (
	ErrValidation = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrAuth       = &Error{Kind: KindAuth, Message: "not authorized"}
	ErrNotFound   = &Error{Kind: KindNotFound, Message: "not found"}
	ErrUpstream   = &Error{Kind: KindUpstream, Message: "upstream service failed"}
	ErrInternal   = &Error{Kind: KindInternal, Message: "internal server error"}
)

// Error is an application error carrying a client-safe message and an
// optional cause that is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind when the target is one of the kind
// sentinels, and exact identity otherwise.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if isSentinel(t) {
		return e.Kind == t.Kind
	}
	return e == t
}

func isSentinel(e *Error) bool {
	return e == ErrValidation || e == ErrAuth || e == ErrNotFound || e == ErrUpstream || e == ErrInternal
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Upstream wraps a failure of an external provider. The message goes to the
// client, the cause to the logs.
func Upstream(msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Cause: cause}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: ErrInternal.Message, Cause: cause}
}

// As returns the application error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// HTTPStatus maps an error to the status code it should be reported with.
// Errors outside the taxonomy are internal.
func HTTPStatus(err error) int {
	e := As(err)
	if e == nil {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show to a client.
func PublicMessage(err error) string {
	e := As(err)
	if e == nil || e.Kind == KindInternal {
		return ErrInternal.Message
	}
	return e.Message
}
