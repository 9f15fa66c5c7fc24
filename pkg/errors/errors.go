// Package errors provides structured error reporting for the backdrop
// pipeline.
//
// The backdrop component never surfaces errors to its owner: a failed cycle
// is skipped and the last good frame stays on screen. Every absorbed failure
// is still reported here so embedders can observe why frames are being
// dropped.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindCapture indicates that no capture source was reachable.
	KindCapture
	// KindOffscreen indicates that an offscreen render context could not be
	// allocated.
	KindOffscreen
	// KindBlur indicates that the blur kernel produced no output.
	KindBlur
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindCapture:
		return "capture"
	case KindOffscreen:
		return "offscreen"
	case KindBlur:
		return "blur"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BackdropError represents a structured error in the backdrop pipeline.
type BackdropError struct {
	// Op is the operation that failed (e.g., "compositor.Capture").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BackdropError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BackdropError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "blur.Pipeline").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the backdrop pipeline.
type ErrorHandler interface {
	// HandleError is called when a cycle is skipped due to an error.
	HandleError(err *BackdropError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
