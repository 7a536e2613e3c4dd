package layout

import "errors"

// errNoReason is used when a fallback is recorded without a cause.
var errNoReason = errors.New("fallback without reason")

// Resolved carries the value of a recoverable operation together with how it was obtained.
// A nil Reason means the primary path succeeded; otherwise Value is the substitute and Reason
// explains why the primary path was abandoned.
type Resolved[T any] struct {
	Value  T
	Reason error
}

// OK wraps a value obtained through the primary path.
func OK[T any](v T) Resolved[T] { return Resolved[T]{Value: v} }

// Fallback wraps a substitute value and the reason it was used.
func Fallback[T any](v T, reason error) Resolved[T] {
	if reason == nil {
		reason = errNoReason
	}
	return Resolved[T]{Value: v, Reason: reason}
}

// IsFallback reports whether the substitute path was taken.
func (r Resolved[T]) IsFallback() bool { return r.Reason != nil }

// ReasonString returns the fallback reason, or "" on the primary path.
func (r Resolved[T]) ReasonString() string {
	if r.Reason == nil {
		return ""
	}
	return r.Reason.Error()
}
