// Package faults classifies errors crossing the application boundary so the
// HTTP adapter can map them to response codes without inspecting messages.
package faults

import (
	"errors"
	"fmt"
)

// Kind is the coarse classification of a fault.
type Kind int

const (
	// KindInternal is the default for unclassified errors.
	KindInternal Kind = iota
	// KindInvalid marks rejected input (400-equivalent).
	KindInvalid
	// KindNotFound marks a missing keyed entity (404-equivalent).
	KindNotFound
	// KindConflict marks a business-rule rejection (409-equivalent).
	KindConflict
	// KindUpstream marks a failed fetch or write against the list store or
	// feed (502-equivalent). A whole-fetch failure is always KindUpstream;
	// individual malformed records never surface as errors at all.
	KindUpstream
)

// Fault is an error with a Kind and a human-readable message.
type Fault struct {
	Kind Kind
	Msg  string
	Err  error // optional cause
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Err != nil {
		return f.Msg + ": " + f.Err.Error()
	}
	return f.Msg
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (f *Fault) Unwrap() error { return f.Err }

// Invalidf builds a KindInvalid fault.
func Invalidf(format string, args ...any) error {
	return &Fault{Kind: KindInvalid, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a KindNotFound fault.
func NotFoundf(format string, args ...any) error {
	return &Fault{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds a KindConflict fault.
func Conflictf(format string, args ...any) error {
	return &Fault{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Upstream wraps a storage or feed failure with a stable message.
func Upstream(msg string, err error) error {
	return &Fault{Kind: KindUpstream, Msg: msg, Err: err}
}

// KindOf returns the classification of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInternal
}
