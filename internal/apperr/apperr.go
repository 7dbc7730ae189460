package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so transports can map it to a status or an error code.
type Kind string

const (
	KindAuthenticationRequired Kind = "UNAUTHENTICATED"
	KindAuthenticationFailed   Kind = "AUTHENTICATION_FAILED"
	KindAuthorizationDenied    Kind = "FORBIDDEN"
	KindValidationFailed       Kind = "VALIDATION_FAILED"
	KindNotFound               Kind = "NOT_FOUND"
	KindUpstreamFailure        Kind = "UPSTREAM_FAILURE"
	KindInternal               Kind = "INTERNAL"
)

// sentinels for errors.Is, compared by kind only
var (
	ErrAuthenticationRequired = &Error{Kind: KindAuthenticationRequired}
	ErrAuthenticationFailed   = &Error{Kind: KindAuthenticationFailed}
	ErrAuthorizationDenied    = &Error{Kind: KindAuthorizationDenied}
	ErrValidationFailed       = &Error{Kind: KindValidationFailed}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrUpstreamFailure        = &Error{Kind: KindUpstreamFailure}
	ErrInternal               = &Error{Kind: KindInternal}
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap keeps err as the cause. The cause is logged, never shown to clients.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	if e.Msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// PublicMessage is the text safe to return to a client.
func (e *Error) PublicMessage() string {
	if e.Kind == KindInternal {
		return "internal server error"
	}
	if e.Msg == "" {
		return string(e.Kind)
	}
	return e.Msg
}

// Extensions exposes the kind as a GraphQL error extension.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

func (e *Error) HTTPStatus() int {
	return StatusOf(e.Kind)
}

// KindOf returns the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func StatusOf(kind Kind) int {
	switch kind {
	case KindAuthenticationRequired, KindAuthenticationFailed:
		return http.StatusUnauthorized
	case KindAuthorizationDenied:
		return http.StatusForbidden
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
