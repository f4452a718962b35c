package partfile

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a partfile failure. Every error returned by this package
// carries exactly one kind; callers map kinds to exit codes or retry policy
// without parsing message text.
type Kind int

const (
	// KindUnknown is the zero value; it is never attached to an error
	// produced by this package.
	KindUnknown Kind = iota

	// KindInvalidInput covers empty sources, bad part counts or size
	// bounds, and sizing directives that cannot be satisfied.
	KindInvalidInput

	// KindIO covers unreadable sources, unwritable destinations, and
	// files that disappear mid-operation. Never retried internally.
	KindIO

	// KindIntegrity covers size or hash mismatches found during
	// verification, including a post-merge whole-file hash mismatch.
	KindIntegrity

	// KindManifest covers missing, malformed, or schema-incomplete
	// manifest documents.
	KindManifest

	// KindCanceled marks an operation stopped by context cancellation.
	KindCanceled
)

// String returns the kind's name for display.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindIO:
		return "io failure"
	case KindIntegrity:
		return "integrity failure"
	case KindManifest:
		return "manifest failure"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by all partfile operations. Op names
// the step that failed; Err is the underlying cause and is exposed via
// Unwrap so errors.Is works through it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("partfile: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel causes distinguishing verifier outcomes. They appear wrapped
// inside a KindIntegrity or KindManifest Error; check with errors.Is.
var (
	// ErrNoManifest is returned by ReadManifest when no manifest object
	// exists at the expected key. Merge treats it as a signal to fall
	// back to degraded-mode part discovery.
	ErrNoManifest = errors.New("manifest not found")

	// ErrPartMissing means a part named by the manifest does not exist.
	ErrPartMissing = errors.New("part missing")

	// ErrSizeMismatch means a part exists but its on-disk size differs
	// from the recorded size.
	ErrSizeMismatch = errors.New("part size mismatch")

	// ErrHashMismatch means a part's computed digest differs from the
	// recorded digest.
	ErrHashMismatch = errors.New("part hash mismatch")
)

// KindOf reports the failure kind of err. Context cancellation is always
// reported as KindCanceled, even when wrapped by another kind.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// wrap classifies err under kind unless it already carries a
// classification, in which case the inner kind wins. Context errors are
// reclassified as KindCanceled.
func wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = KindCanceled
	} else {
		var pe *Error
		if errors.As(err, &pe) {
			kind = pe.Kind
		}
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func invalidf(op, format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Op: op, Err: fmt.Errorf(format, args...)}
}

func integrityf(op, format string, args ...any) error {
	return &Error{Kind: KindIntegrity, Op: op, Err: fmt.Errorf(format, args...)}
}

func manifestf(op, format string, args ...any) error {
	return &Error{Kind: KindManifest, Op: op, Err: fmt.Errorf(format, args...)}
}
