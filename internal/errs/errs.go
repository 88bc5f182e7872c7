// Package errs defines the error kinds shared by the neptis client packages.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error independently of where it was raised.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	Transport          Kind = "transport"
	Unauthorized       Kind = "unauthorized"
	NotFound           Kind = "not found"
	Conflict           Kind = "conflict"
	ReadOnly           Kind = "read-only"
	Storage            Kind = "storage"
	ToolMissing        Kind = "tool missing"
	ToolFailed         Kind = "tool failed"
	ParseError         Kind = "parse error"
	Timeout            Kind = "timeout"
	Cancelled          Kind = "cancelled"
	Configuration      Kind = "configuration"
	Unreachable        Kind = "unreachable"
	NetworkUnavailable Kind = "network unavailable"
	Denied             Kind = "denied"
)

// Error carries a Kind together with the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// E builds an *Error. err may be nil.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds an *Error with a formatted cause.
func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the first Kind found in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ""
}

// Is reports whether err carries kind.
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}
