package platform

import (
	"errors"
	"testing"
)

func TestNewCreationError_WrapsAndUnwraps(t *testing.T) {
	err := NewCreationError("x11", "create window", ErrTooManyWindows)

	var ce *CreationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CreationError, got %T", err)
	}
	if !errors.Is(err, ErrTooManyWindows) {
		t.Fatalf("expected errors.Is to find the cause")
	}

	again := NewCreationError("x11", "outer", err)
	if again != err {
		t.Fatalf("expected an existing CreationError to be returned unchanged")
	}
}

func TestCapabilityError_IsNotSupported(t *testing.T) {
	err := Refuse("grab cursor", "forbidden")
	if !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected refusal to match ErrNotSupported")
	}
	if !IsCapabilityRefusal(err) {
		t.Fatalf("expected IsCapabilityRefusal to recognize %v", err)
	}
	if IsCapabilityRefusal(errors.New("other")) {
		t.Fatalf("plain errors are not refusals")
	}
}

func TestFatalUnsupported_PanicsWithDistinctValue(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
		if !IsFatalUnsupported(r) {
			t.Fatalf("expected *UnsupportedError, got %T", r)
		}
	}()
	FatalUnsupported("headless", "monitor position")
}

func TestIsFatalUnsupported_RejectsOrdinaryPanics(t *testing.T) {
	if IsFatalUnsupported("boom") {
		t.Fatalf("string panic values are not fatal-unsupported")
	}
	if IsFatalUnsupported(nil) {
		t.Fatalf("nil is not fatal-unsupported")
	}
}
