package sdk

import "errors"

// ErrorKind classifies contract failures. Every failed entry point aborts the
// whole transaction; the kind only describes why, for callers and tests.
type ErrorKind uint8

const (
	ErrAuthorization ErrorKind = iota + 1
	ErrNotFound
	ErrState
	ErrTiming
	ErrValidation
)

// String prints the error kind as lower-case text for logs.
func (k ErrorKind) String() string {
	switch k {
	case ErrAuthorization:
		return "authorization"
	case ErrNotFound:
		return "not_found"
	case ErrState:
		return "state"
	case ErrTiming:
		return "timing"
	case ErrValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a contract failure. Code is the stable on-chain identifier string
// (like DAO_NOT_MEMBER) that wallets and tests match against.
type Error struct {
	Kind ErrorKind
	Code string
}

func (e *Error) Error() string {
	return e.Code
}

// Fail builds a contract failure with the given kind and identifier code.
func Fail(kind ErrorKind, code string) *Error {
	return &Error{Kind: kind, Code: code}
}

// FailCode extracts the identifier code from a contract failure, or empty if
// the error came from somewhere else.
func FailCode(err error) string {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return ""
}

// FailKind extracts the error kind from a contract failure, or zero.
func FailKind(err error) ErrorKind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return 0
}
