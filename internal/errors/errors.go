// Package errors defines the error kinds raised by the emulator core.
//
// Every error carries a Kind, which callers test with Is rather than by
// comparing messages. Errors can wrap other errors; when an error of one
// kind wraps another error of the same kind the message prefix is only
// printed once, so code does not need to care whether the error it is
// propagating was already categorised. For instance:
//
//	err := errors.New(errors.Address, "address %#04x is unbound", 0xA000)
//	err = errors.Wrap(errors.Address, err, "write16")
//
// prints as
//
//	address error: write16: address 0xa000 is unbound
package errors

import (
	goerrors "errors"
	"fmt"
	"strings"
)

// Kind categorises an error.
type Kind int

// List of error kinds.
const (
	// NullReference is raised when a required component, memory or bus
	// is missing.
	NullReference Kind = iota + 1
	// BadParameter is raised for an invalid enumerator, size or index.
	BadParameter
	// Address is raised for bus range violations, and for unbound or
	// already occupied addresses.
	Address
	// IO is raised when a cartridge or boot ROM cannot be read.
	IO
	// Instruction is raised for unrecognised opcodes.
	Instruction
	// NotImplemented is raised for deliberately unhandled features.
	NotImplemented
)

var messages = map[Kind]string{
	NullReference:  "null reference",
	BadParameter:   "bad parameter",
	Address:        "address error",
	IO:             "i/o error",
	Instruction:    "instruction error",
	NotImplemented: "not implemented",
}

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	if m, ok := messages[k]; ok {
		return m
	}
	return fmt.Sprintf("unknown error kind (%d)", int(k))
}

// Error is the error type returned by the emulator core.
type Error struct {
	Kind   Kind
	detail string
	cause  error
}

// New creates an error of the given kind.
func New(kind Kind, format string, values ...interface{}) error {
	return &Error{
		Kind:   kind,
		detail: fmt.Sprintf(format, values...),
	}
}

// Wrap creates an error of the given kind around err. A nil err
// returns nil.
func Wrap(kind Kind, err error, format string, values ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:   kind,
		detail: fmt.Sprintf(format, values...),
		cause:  err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := []string{e.Kind.String()}
	if e.detail != "" {
		parts = append(parts, e.detail)
	}
	if e.cause != nil {
		s := e.cause.Error()

		// collapse a duplicated kind prefix
		var inner *Error
		if goerrors.As(e.cause, &inner) && inner.Kind == e.Kind {
			s = strings.TrimPrefix(s, e.Kind.String()+": ")
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether err, or any error it wraps, is of the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		err = goerrors.Unwrap(err)
	}
	return false
}
