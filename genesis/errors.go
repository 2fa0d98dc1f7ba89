package genesis

import (
	"errors"
	"fmt"
)

// Error kinds. Every genesis error belongs to exactly one kind, and every kind is fatal.
var (
	// ErrConfiguration covers bad profile selection and missing or malformed fixtures.
	ErrConfiguration = errors.New("configuration error")
	// ErrAllocationIO covers a missing or unreadable allocation file.
	ErrAllocationIO = errors.New("allocation io error")
	// ErrAllocationDecode covers malformed allocation structure and fields.
	ErrAllocationDecode = errors.New("allocation decode error")
	// ErrInvariantViolation covers snapshots that break a genesis invariant.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Reasons, each reported under one of the kinds above.
var (
	ErrAllocationFileNotFound = errors.New("allocation file not found")
	ErrAllocationParse        = errors.New("malformed allocation file")
	ErrAllocationFieldDecode  = errors.New("bad allocation field")

	ErrUnfundedValidator     = errors.New("validator account is not funded")
	ErrStashIsController     = errors.New("stash and controller are the same account")
	ErrDuplicateAuthorityKey = errors.New("authority key shared by several validators")
	ErrDuplicateValidator    = errors.New("validator stash listed twice")
	ErrAccountNotIndexed     = errors.New("account missing from the index")
	ErrVestingExceedsBalance = errors.New("vesting amount exceeds account balance")
	ErrZeroVestingDuration   = errors.New("vesting duration is zero")
	ErrUnfundedVesting       = errors.New("vesting schedule for an unfunded account")
	ErrBondExceedsBalance    = errors.New("staker bond exceeds stash balance")
	ErrInvalidParameter      = errors.New("invalid genesis parameter")
	ErrIssuanceOverflow      = errors.New("total issuance overflows")
)

// Error is a fatal genesis error naming the offending record.
// errors.Is matches both its Kind and its Reason.
type Error struct {
	Kind   error
	Reason error
	// Record identifies the offending input: an account, a file position or a field path.
	Record string
	// Err is the underlying cause, if any.
	Err error
}

// NewError builds an *Error.
func NewError(kind, reason error, record string, cause error) *Error {
	return &Error{Kind: kind, Reason: reason, Record: record, Err: cause}
}

// Invariant builds an ErrInvariantViolation error.
func Invariant(reason error, format string, args ...interface{}) *Error {
	return NewError(ErrInvariantViolation, reason, fmt.Sprintf(format, args...), nil)
}

// Configuration builds an ErrConfiguration error.
func Configuration(reason error, record string) *Error {
	return NewError(ErrConfiguration, reason, record, nil)
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Reason != nil {
		msg += ": " + e.Reason.Error()
	}
	if e.Record != "" {
		msg += " (" + e.Record + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the error's kind or reason.
func (e *Error) Is(target error) bool {
	return target == e.Kind || (e.Reason != nil && target == e.Reason)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
