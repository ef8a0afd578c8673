package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies object-store failures independently of how they are
// carried over the wire (see protocol.go for the JSON shape).
type ErrorKind string

const (
	// NullArgument is returned when register() is called with a nil instance.
	NullArgument ErrorKind = "NullArgument"

	// UnknownReference is returned when an operation names an instance ID that
	// has no live handle.
	UnknownReference ErrorKind = "UnknownReference"

	// StillReachable is returned when delete() targets a handle whose proxy is
	// still live.
	StillReachable ErrorKind = "StillReachable"

	// InvalidType is returned when resolveType() yields the wrong kind of
	// TypeDescriptor (e.g. an interface where a class was expected).
	InvalidType ErrorKind = "InvalidType"

	// CollectedReferent marks a handle whose real referent was reclaimed while
	// the handle still existed. Unreachable under the proxy-weak design this
	// store implements (the kernel always holds a strong ref to the referent),
	// kept only so callers can assert it never fires.
	CollectedReferent ErrorKind = "CollectedReferent"
)

// KernelError is the sentinel error type surfaced to the host for every
// object-store failure. Kind is stable and wire-visible; Message is
// human-readable context.
type KernelError struct {
	Kind    ErrorKind
	Message string
}

func (e *KernelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets callers write errors.Is(err, domain.ErrStillReachable) and similar.
func (e *KernelError) Is(target error) bool {
	var other *KernelError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// NewError builds a KernelError of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *KernelError {
	return &KernelError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is comparisons against a specific kind without caring
// about the message.
var (
	ErrNullArgument      = &KernelError{Kind: NullArgument}
	ErrUnknownReference  = &KernelError{Kind: UnknownReference}
	ErrStillReachable    = &KernelError{Kind: StillReachable}
	ErrInvalidType       = &KernelError{Kind: InvalidType}
	ErrCollectedReferent = &KernelError{Kind: CollectedReferent}
)
