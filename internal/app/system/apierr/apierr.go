// internal/app/system/apierr/apierr.go

// Package apierr defines the closed set of domain error kinds the API
// surfaces. Every store translates driver-level failures into one of these
// kinds; nothing below this package ever leaks a raw driver error to a
// handler or a client.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
)

// Kind is a stable machine-readable error category.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindInvalid     Kind = "invalid"
	KindConflict    Kind = "conflict"
	KindUnavailable Kind = "unavailable"
	KindInternal    Kind = "internal"
)

// Error is a domain error carrying a kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, logged but never sent to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a domain error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error for the named entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Invalid returns a validation error with a caller-facing message.
func Invalid(message string) *Error {
	return &Error{Kind: KindInvalid, Message: message}
}

// Conflict returns a unique-key / referential-integrity violation error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf extracts the kind from err, or KindInternal when err is not a
// domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message for err. Non-domain errors get
// a sanitized generic message; the full detail belongs in the server log.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps a kind onto a transport status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalid:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromMongo translates a mongo driver error into a domain error.
//
//   - mongo.ErrNoDocuments        -> NotFound for entity
//   - duplicate-key write errors  -> Conflict with conflictMsg
//   - timeouts / network errors   -> Unavailable
//   - anything else               -> Internal, cause preserved for logging
//
// Stores call this at every driver boundary so their callers only ever see
// the closed taxonomy.
func FromMongo(err error, entity, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound(entity)
	}
	if wafflemongo.IsDup(err) {
		return &Error{Kind: KindConflict, Message: conflictMsg, Err: err}
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindUnavailable, Message: "data store unavailable", Err: err}
	}
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}
