package apperr

import (
	"errors"
	"fmt"
	"testing"
)

var errSample = &Error{
	Message: "schedule %s overlaps with %d others",
}

func TestFmtKeepsIdentity(t *testing.T) {
	err := errSample.Fmt("abc", 2)

	if err.Error() != "schedule abc overlaps with 2 others" {
		t.Fatalf("unexpected message: %s", err.Error())
	}

	if !errors.Is(err, errSample) {
		t.Fatal("expected formatted error to match its sentinel")
	}

	wrapped := fmt.Errorf("create: %w", err)
	if !errors.Is(wrapped, errSample) {
		t.Fatal("expected wrapped error to match its sentinel")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")

	err := errSample.Wrap(cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected error to unwrap to its cause")
	}

	if !errors.Is(err, errSample) {
		t.Fatal("expected wrapped error to match its sentinel")
	}

	other := &Error{Message: "something else"}
	if errors.Is(err, other) {
		t.Fatal("unrelated sentinels must not match")
	}

	e, ok := As(fmt.Errorf("outer: %w", err))
	if !ok || e.Cause != cause {
		t.Fatalf("As returned %v, %v", e, ok)
	}
}
