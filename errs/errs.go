// Package errs defines the engine-wide error taxonomy shared by every
// tablekit package. All engine failures are one of a small set of kinds;
// callers distinguish them with errors.Is against the sentinel values.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// KindNotInitialized marks an operation attempted before Init/Finalize.
	KindNotInitialized Kind = iota
	// KindBadInput marks a wrong-length ingestion or an invalid dictionary id.
	KindBadInput
	// KindOutOfRange marks a row/column index outside current bounds.
	KindOutOfRange
	// KindStateMisuse marks a double next() call or an out-of-range row access.
	KindStateMisuse
	// KindCapacityExceeded marks an allocation failure for a layout/view buffer.
	KindCapacityExceeded
)

func (k Kind) String() string {
	switch k {
	case KindNotInitialized:
		return "not initialized"
	case KindBadInput:
		return "bad input"
	case KindOutOfRange:
		return "out of range"
	case KindStateMisuse:
		return "state misuse"
	case KindCapacityExceeded:
		return "capacity exceeded"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is comparisons against a Kind, independent of
// the operation/message that produced a given *Error.
var (
	NotInitialized   = errors.New("tablekit: not initialized")
	BadInput         = errors.New("tablekit: bad input")
	OutOfRange       = errors.New("tablekit: out of range")
	StateMisuse      = errors.New("tablekit: state misuse")
	CapacityExceeded = errors.New("tablekit: capacity exceeded")
)

func sentinelFor(k Kind) error {
	switch k {
	case KindNotInitialized:
		return NotInitialized
	case KindBadInput:
		return BadInput
	case KindOutOfRange:
		return OutOfRange
	case KindStateMisuse:
		return StateMisuse
	case KindCapacityExceeded:
		return CapacityExceeded
	default:
		return nil
	}
}

// Error is the concrete error value returned by engine operations. Op names
// the failing call (e.g. "store.IngestF64"); Msg carries the detail.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
}

// New builds an *Error for the given kind, operation, and detail message.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("tablekit: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("tablekit: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap exposes the Kind's sentinel so errors.Is(err, errs.BadInput) works
// regardless of which operation produced err.
func (e *Error) Unwrap() error {
	return sentinelFor(e.Kind)
}
