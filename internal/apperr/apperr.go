// Package apperr defines the error kinds surfaced to GraphQL callers.
//
// Every resolver failure is an *Error. Its message is what the caller sees;
// its Kind lets callers tell a missing record from a transient store or
// provider failure without inspecting the message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUpstream Kind = iota
	KindNotFound
	KindInvalidInput
	KindRouting
)

// String returns the errorType reported to AppSync.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidInput:
		return "InvalidInput"
	case KindRouting:
		return "ResolverNotFound"
	default:
		return "UpstreamFailure"
	}
}

// Sentinels for errors.Is matching by kind.
var (
	ErrUpstream     = errors.New("upstream failure")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrRouting      = errors.New("resolver not found")
)

// Error is a classified, user-facing failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUpstream:
		return e.Kind == KindUpstream
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrRouting:
		return e.Kind == KindRouting
	}
	return false
}

// NotFound reports an absent record, e.g. NotFound("Product not found").
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Invalid reports an unrecognized or malformed argument.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Routing reports a (type, field) pair with no registered resolver.
func Routing(typeName, fieldName string) *Error {
	return &Error{
		Kind:    KindRouting,
		Message: fmt.Sprintf("Resolver not found for %s.%s", typeName, fieldName),
	}
}

// Upstream converts err into a user-facing failure. An err that is already an
// *Error passes through untouched. The message is the root cause text when
// there is one, otherwise fallback.
func Upstream(fallback string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	msg := rootMessage(err)
	if msg == "" {
		msg = fallback
	}
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// KindOf returns the kind of err, KindUpstream for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUpstream
}

// rootMessage returns the message of the innermost wrapped error, stripping
// the "op: " prefixes the stores add while wrapping.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
