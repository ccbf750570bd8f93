// Package apperrors defines the error taxonomy every domain operation
// returns. Controllers translate kinds to HTTP statuses; nothing in the
// domain panics across a component boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicate
	KindNotFound
	KindConflict
	KindInvalidTransition
	KindUnauthorized
	KindTransient
)

// Conflict reasons.
const (
	ReasonDoubleBooked     = "double_booked"
	ReasonCapacityExceeded = "capacity_exceeded"
	ReasonTripClosed       = "trip_closed"
	ReasonInUse            = "in_use"
)

// Error carries the kind plus whichever detail fields apply to it.
type Error struct {
	Kind   Kind
	Field  string // KindValidation: the offending field
	Entity string // KindDuplicate / KindNotFound: "vehicle", "driver", "trip", "passenger", ...
	ID     uint   // KindNotFound: the missing id (0 when not applicable)
	Reason string // KindConflict: one of the Reason* constants
	From   string // KindInvalidTransition
	To     string // KindInvalidTransition
	Msg    string
	Err    error // KindTransient: wrapped cause
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Msg)
	case KindDuplicate:
		return fmt.Sprintf("duplicate %s", e.Entity)
	case KindNotFound:
		if e.ID != 0 {
			return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
		}
		return fmt.Sprintf("%s not found", e.Entity)
	case KindConflict:
		return fmt.Sprintf("conflict (%s): %s", e.Reason, e.Msg)
	case KindInvalidTransition:
		return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
	case KindUnauthorized:
		if e.Msg != "" {
			return e.Msg
		}
		return "unauthorized"
	case KindTransient:
		return fmt.Sprintf("transient storage error: %v", e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

func Duplicate(entity string) *Error {
	return &Error{Kind: KindDuplicate, Entity: entity}
}

func NotFound(entity string, id uint) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

func Conflict(reason, msg string) *Error {
	return &Error{Kind: KindConflict, Reason: reason, Msg: msg}
}

func InvalidTransition(from, to string) *Error {
	return &Error{Kind: KindInvalidTransition, From: from, To: to}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Transient wraps persistence timeouts/connectivity failures. It is the
// only retryable kind; everything else is terminal for the call.
func Transient(err error) *Error {
	return &Error{Kind: KindTransient, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }

// ConflictReason returns the conflict reason of err, or "" when err is
// not a conflict.
func ConflictReason(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindConflict {
		return e.Reason
	}
	return ""
}

// HTTPStatus maps an error to the status the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate, KindConflict, KindInvalidTransition:
		return http.StatusConflict
	case KindTransient:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
