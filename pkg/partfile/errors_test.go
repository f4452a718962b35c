package partfile

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInvalidInput, "invalid input"},
		{KindIO, "io failure"},
		{KindIntegrity, "integrity failure"},
		{KindManifest, "manifest failure"},
		{KindCanceled, "canceled"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	plain := errors.New("plain")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"unclassified", plain, KindUnknown},
		{"direct", &Error{Kind: KindIO, Op: "op", Err: plain}, KindIO},
		{"wrapped once more", fmt.Errorf("outer: %w", &Error{Kind: KindManifest, Op: "op", Err: plain}), KindManifest},
		{"context canceled", context.Canceled, KindCanceled},
		{"canceled inside io wrapper", &Error{Kind: KindIO, Op: "op", Err: context.Canceled}, KindCanceled},
		{"deadline exceeded", context.DeadlineExceeded, KindCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesInnerKind(t *testing.T) {
	inner := &Error{Kind: KindIntegrity, Op: "check", Err: ErrHashMismatch}
	outer := wrap(KindIO, "merge", inner)

	if KindOf(outer) != KindIntegrity {
		t.Errorf("outer kind = %v, want inner KindIntegrity", KindOf(outer))
	}
	if !errors.Is(outer, ErrHashMismatch) {
		t.Error("sentinel lost through wrapping")
	}
}

func TestWrapReclassifiesContextErrors(t *testing.T) {
	err := wrap(KindIO, "read", fmt.Errorf("copy: %w", context.Canceled))
	if KindOf(err) != KindCanceled {
		t.Errorf("kind = %v, want KindCanceled", KindOf(err))
	}
}

func TestWrapNil(t *testing.T) {
	if err := wrap(KindIO, "op", nil); err != nil {
		t.Errorf("wrap(nil) = %v, want nil", err)
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindIO, Op: "open source", Err: errors.New("permission denied")}
	want := "partfile: open source: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
