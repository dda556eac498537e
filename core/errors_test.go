package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	if Code(nil) != NOERROR {
		t.Errorf("expected nil error to have code NOERROR")
	}
	if Code(errors.New("plain")) != EINTERNAL {
		t.Errorf("expected plain error to have code EINTERNAL")
	}
	err := Error(EEMPTY, "catalog %s is empty", "dir:/fonts")
	if Code(err) != EEMPTY {
		t.Errorf("expected code %d, have %d", EEMPTY, Code(err))
	}
	if UserMessage(err) != "catalog dir:/fonts is empty" {
		t.Errorf("unexpected user message: %q", UserMessage(err))
	}
	wrapped := fmt.Errorf("listing failed: %w", err)
	if Code(wrapped) != EEMPTY || !errors.Is(wrapped, err) {
		t.Errorf("expected code to survive wrapping")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(cause, ECONNECTION, "cannot reach %s", "fonts.example.com")
	if !errors.Is(err, cause) {
		t.Errorf("expected cause in error chain")
	}
	if Code(err) != ECONNECTION {
		t.Errorf("expected code ECONNECTION, have %d", Code(err))
	}
	if UserMessage(err) != "cannot reach fonts.example.com" {
		t.Errorf("unexpected user message: %q", UserMessage(err))
	}
	if cause := errors.Unwrap(WrapError(nil, ELOAD, "font %s", "Roboto")); cause == nil || cause.Error() != "font failed to load" {
		t.Errorf("expected standard text for nil error")
	}
	if UserMessage(errors.New("x")) != "internal error" {
		t.Errorf("expected code text for plain errors")
	}
}
