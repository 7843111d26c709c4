package http

import (
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

type hex32Probe struct {
	ID string `validate:"required,hex32"`
}

func TestHex32Validation(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&hex32Probe{ID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("valid id rejected: %v", err)
	}

	bad := []string{
		"",
		"short",
		strings.Repeat("A", 32), // uppercase
		strings.Repeat("g", 32), // not hex
		strings.Repeat("a", 31), // too short
		strings.Repeat("a", 33), // too long
	}
	for _, id := range bad {
		if err := cv.Validate(&hex32Probe{ID: id}); err == nil {
			t.Errorf("expected rejection for %q", id)
		}
	}
}

func TestToFieldErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&hex32Probe{ID: "nope"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	details := ToFieldErrors(err)
	if !containsFieldMsg(details, "ID", "32-char lowercase hex") {
		t.Fatalf("unexpected details: %+v", details)
	}

	err = cv.Validate(&hex32Probe{})
	details = ToFieldErrors(err)
	if !containsFieldMsg(details, "ID", "is required") {
		t.Fatalf("unexpected details: %+v", details)
	}
}
