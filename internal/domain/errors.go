package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable machine-readable classification carried by every
// user-facing engine error.
type ErrorKind string

const (
	KindValidation          ErrorKind = "VALIDATION_ERROR"
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindVehicleUnavailable  ErrorKind = "VEHICLE_UNAVAILABLE"
	KindInvalidCoupon       ErrorKind = "INVALID_COUPON"
	KindCouponConstraint    ErrorKind = "COUPON_CONSTRAINT_VIOLATION"
	KindCancellationWindow  ErrorKind = "CANCELLATION_WINDOW_VIOLATION"
	KindExtensionConflict   ErrorKind = "EXTENSION_CONFLICT"
	KindIllegalRefundChange ErrorKind = "ILLEGAL_REFUND_TRANSITION"
	KindInsufficientPoints  ErrorKind = "INSUFFICIENT_POINTS"
	KindGateway             ErrorKind = "GATEWAY_ERROR"
	KindIllegalTransition   ErrorKind = "ILLEGAL_TRANSITION"
)

// Error carries a kind plus a human message. Internal detail, if any, is
// wrapped and reachable through errors.Unwrap but never required by callers.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind when the target is a *Error with the same
// kind and an empty message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// E builds a kinded error with a formatted message.
func E(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause to a kinded error.
func Wrap(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, or empty if err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
