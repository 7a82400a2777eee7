// Package rentalerr defines the error taxonomy shared by the flix packages.
//
// Every failure raised by the sequence, inventory, account and rental
// packages is an *Error carrying a Code. Callers match on the code rather
// than on the message:
//
//	if errors.Is(err, rentalerr.ErrIndexOutOfRange) { ... }
//	code := rentalerr.CodeOf(err)
//
// All codes describe caller contract violations. None of them is transient,
// so nothing in flix retries.
package rentalerr

import (
	"errors"
	"fmt"
)

// Code categorizes an error.
type Code string

const (
	// CodeInvalidArgument indicates a missing or malformed required value.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeIndexOutOfRange indicates a position outside a sequence's valid domain.
	CodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// CodeOutOfStock indicates an attempt to take a unit of an item with zero stock.
	// Checkout only takes units from available items, so seeing this code
	// means an invariant was broken.
	CodeOutOfStock Code = "OUT_OF_STOCK"

	// CodeEmptyTraversal indicates a cursor advanced with no current element.
	CodeEmptyTraversal Code = "EMPTY_TRAVERSAL"

	// CodeNotLoggedIn indicates a rental operation with no active account.
	CodeNotLoggedIn Code = "NOT_LOGGED_IN"

	// CodeSessionActive indicates a login while another session is open.
	CodeSessionActive Code = "SESSION_ACTIVE"

	// CodeAccessDenied indicates an admin-only operation outside an admin session.
	CodeAccessDenied Code = "ACCESS_DENIED"

	// CodeAuthFailed indicates an unknown account id or a wrong password.
	CodeAuthFailed Code = "AUTH_FAILED"

	// CodeDuplicateAccount indicates a registration for an id that already exists.
	CodeDuplicateAccount Code = "DUPLICATE_ACCOUNT"

	// CodeAccountNotFound indicates a lookup for an id that is not registered.
	CodeAccountNotFound Code = "ACCOUNT_NOT_FOUND"

	// CodeRegistryFull indicates the registry reached its capacity.
	CodeRegistryFull Code = "REGISTRY_FULL"
)

// Sentinels for errors.Is matching. They match any *Error with the same code.
var (
	ErrInvalidArgument  = &Error{Code: CodeInvalidArgument}
	ErrIndexOutOfRange  = &Error{Code: CodeIndexOutOfRange}
	ErrOutOfStock       = &Error{Code: CodeOutOfStock}
	ErrEmptyTraversal   = &Error{Code: CodeEmptyTraversal}
	ErrNotLoggedIn      = &Error{Code: CodeNotLoggedIn}
	ErrSessionActive    = &Error{Code: CodeSessionActive}
	ErrAccessDenied     = &Error{Code: CodeAccessDenied}
	ErrAuthFailed       = &Error{Code: CodeAuthFailed}
	ErrDuplicateAccount = &Error{Code: CodeDuplicateAccount}
	ErrAccountNotFound  = &Error{Code: CodeAccountNotFound}
	ErrRegistryFull     = &Error{Code: CodeRegistryFull}
)

// Error is a coded, human-readable failure.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Details contains additional context (positions, sizes, ids).
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// OutOfRange creates an IndexOutOfRange error for position pos in a
// sequence of the given size.
func OutOfRange(what string, pos, size int) *Error {
	return &Error{
		Code:    CodeIndexOutOfRange,
		Message: fmt.Sprintf("%s position %d out of range [0, %d)", what, pos, size),
		Details: map[string]string{
			"position": fmt.Sprintf("%d", pos),
			"size":     fmt.Sprintf("%d", size),
		},
	}
}

// CodeOf extracts the code from err, or "" if err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsIndexOutOfRange returns true if err carries CodeIndexOutOfRange.
func IsIndexOutOfRange(err error) bool {
	return CodeOf(err) == CodeIndexOutOfRange
}

// IsInvariantViolation returns true if err can only surface when an internal
// invariant has been broken, as opposed to a bad request.
func IsInvariantViolation(err error) bool {
	return CodeOf(err) == CodeOutOfStock
}
