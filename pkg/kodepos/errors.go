package kodepos

import (
	"errors"
	"fmt"
)

// Kind classifies a lookup failure. Validation failures never reach the
// network; the remaining kinds describe what went wrong on the wire.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConnection
	KindTimeout
	KindHTTP
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every Client operation. Status is only
// set for KindHTTP.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindHTTP:
		return fmt.Sprintf("%s error: status %d", e.Kind, e.Status)
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s error: %s: %s", e.Kind, e.Message, e.Err.Error())
	case e.Message != "":
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Err.Error())
	default:
		return fmt.Sprintf("%s error", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or KindUnknown for errors that
// didn't originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}
