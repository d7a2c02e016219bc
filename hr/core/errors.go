package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies operation failures so the web layer can map them to a
// status without string matching. Anything unclassified is infrastructure.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindLimitExceeded  Kind = "limit_exceeded"
	KindNotFound       Kind = "not_found"
	KindForbidden      Kind = "forbidden"
	KindInfrastructure Kind = "infrastructure"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrAlreadyClockedIn  = &Error{KindConflict, "Already clocked in"}
	ErrNoActiveClockIn   = &Error{KindConflict, "No active clock-in"}
	ErrSessionOpen       = &Error{KindConflict, "A session is already open"}
	ErrNoOpenSession     = &Error{KindConflict, "No open session"}
	ErrAlreadyDecided    = &Error{KindConflict, "Leave request already processed"}
	ErrCannotCancel      = &Error{KindConflict, "Only pending requests can be cancelled"}
	ErrUnknownLeaveType  = &Error{KindValidation, "Invalid leave type"}
	ErrHalfDayNotAllowed = &Error{KindValidation, "Half day is not allowed for this leave type"}
	ErrBadDateRange      = &Error{KindValidation, "From date cannot be after To date"}
	ErrAccountDisabled   = &Error{KindForbidden, "Account is disabled"}
	ErrUserNotFound      = &Error{KindNotFound, "User not found"}
	ErrRequestNotFound   = &Error{KindNotFound, "Leave request not found"}
)

// BalanceExceededError reports how much of the yearly limit is left so the
// caller can surface it to the employee.
type BalanceExceededError struct {
	Remaining float64
}

func (e *BalanceExceededError) Error() string {
	return fmt.Sprintf("Leave balance exceeded. Remaining: %v day(s)", e.Remaining)
}

// KindOf classifies any error returned by this package.
func KindOf(err error) Kind {
	var be *BalanceExceededError
	if errors.As(err, &be) {
		return KindLimitExceeded
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInfrastructure
}

// StatusOf maps an error kind onto the HTTP status the legacy API used.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict, KindLimitExceeded:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
