// Package apperr classifies errors raised by the core packages so the HTTP
// layer can translate them in one place.
package apperr

import "errors"

// Kind is the category an error belongs to.
type Kind uint8

const (
	KindInternal Kind = iota
	KindCredential
	KindToken
	KindExternal
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
)

var kindNames = map[Kind]string{
	KindInternal:   "internal",
	KindCredential: "credential",
	KindToken:      "token",
	KindExternal:   "external_service",
	KindValidation: "validation",
	KindNotFound:   "not_found",
	KindForbidden:  "forbidden",
	KindConflict:   "conflict",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a categorized error. Sentinels are built with New and compared
// with errors.Is; Wrap attaches a category to an underlying cause.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

// New returns a categorized error with the given message.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Wrap returns a categorized error that unwraps to cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil && e.msg != "" {
		return e.msg + ": " + e.cause.Error()
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.msg
}

// Message returns the message without the cause appended.
func (e *Error) Message() string { return e.msg }

func (e *Error) Unwrap() error { return e.cause }

// ErrorKind reports the category of the error.
func (e *Error) ErrorKind() Kind { return e.kind }

// Kinded is implemented by errors that know their category.
type Kinded interface {
	error
	ErrorKind() Kind
}

// KindOf returns the category of the outermost categorized error in err's
// chain, or KindInternal when there is none.
func KindOf(err error) Kind {
	var k Kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindInternal
}
