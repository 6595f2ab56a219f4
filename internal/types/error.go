package types

import "fmt"

// Kind classifies an application error into the stable, caller-visible
// taxonomy. Anything outside these kinds is treated as an internal fault.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindAlreadyExists
	KindInvalidArgument
	KindInvalidToken
)

// Error is the application error carried from the service layer up to the
// HTTP boundary, where Kind is mapped to a status code.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [kind: %d]", e.Message, e.Kind)
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a KindForbidden error.
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists builds a KindAlreadyExists error.
func AlreadyExists(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument builds a KindInvalidArgument error.
func InvalidArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// InvalidToken builds a KindInvalidToken error. Decode failures are uniform:
// callers cannot distinguish expired from malformed.
func InvalidToken(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidToken, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the taxonomy kind from err, or KindUnknown for plain errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}
