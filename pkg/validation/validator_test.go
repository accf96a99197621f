package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/muyik/smartschool/pkg/apperrors"
)

type sampleInput struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"required,email"`
	Note  string `json:"note" validate:"max=3"`
}

func TestStructReportsEveryViolatedField(t *testing.T) {
	err := Struct(sampleInput{Name: "", Email: "not-an-email", Note: "too long"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	for _, field := range []string{"name", "email", "note"} {
		if _, ok := ve.Violations[field]; !ok {
			t.Errorf("missing violation for %q: %v", field, ve.Violations)
		}
	}
	if len(ve.Violations) != 3 {
		t.Fatalf("violations = %v, want 3 entries", ve.Violations)
	}
}

func TestStructUsesJSONFieldNames(t *testing.T) {
	err := Struct(sampleInput{Name: "ok", Email: ""})
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if _, ok := ve.Violations["Email"]; ok {
		t.Fatal("violations should be keyed by json name, not Go field name")
	}
	if msg := ve.Violations["email"]; msg != "is required" {
		t.Fatalf("email message = %q", msg)
	}
}

func TestStructPassesValidInput(t *testing.T) {
	if err := Struct(sampleInput{Name: "ok", Email: "a@b.co"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidationErrorStringIsDeterministic(t *testing.T) {
	err := Struct(sampleInput{Name: strings.Repeat("x", 10), Email: "bad"})
	first := err.Error()
	for i := 0; i < 5; i++ {
		if got := err.Error(); got != first {
			t.Fatalf("Error() not stable: %q vs %q", got, first)
		}
	}
}

func TestToDetailsUnwrapsValidationError(t *testing.T) {
	err := Struct(sampleInput{})
	details := ToDetails(err)
	if details["name"] == "" || details["email"] == "" {
		t.Fatalf("details = %v", details)
	}
	if ToDetails(nil) != nil {
		t.Fatal("nil error should produce nil details")
	}
	if d := ToDetails(errors.New("boom")); d["payload"] == "" {
		t.Fatalf("opaque errors should map to a payload message, got %v", d)
	}
}
