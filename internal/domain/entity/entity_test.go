package entity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewGenderValidatesName(t *testing.T) {
	if _, err := NewGender(uuid.New(), "", ""); err == nil {
		t.Fatal("expected error for empty gender name")
	}
	if _, err := NewGender(uuid.New(), strings.Repeat("x", GenderNameMaxLen+1), ""); err == nil {
		t.Fatal("expected error for over-long gender name")
	}
	g, err := NewGender(uuid.New(), "Male", "desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.GenderName != "Male" || g.Description != "desc" {
		t.Fatalf("unexpected gender: %+v", g)
	}
}

func TestGenderNameKeepsSurroundingSpace(t *testing.T) {
	g, err := NewGender(uuid.New(), "  Male  ", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.GenderName != "  Male  " {
		t.Fatalf("gender name should be stored verbatim, got %q", g.GenderName)
	}
}

func TestSchoolClassNameIsTrimmed(t *testing.T) {
	c, err := NewSchoolClass(uuid.New(), "  Class 1A  ", "  first grade  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ClassName != "Class 1A" {
		t.Fatalf("class name should be trimmed, got %q", c.ClassName)
	}
	if c.Description != "first grade" {
		t.Fatalf("description should be trimmed, got %q", c.Description)
	}
}

func TestSchoolClassRejectsBlankName(t *testing.T) {
	if _, err := NewSchoolClass(uuid.New(), "   ", ""); err == nil {
		t.Fatal("whitespace-only class name should be rejected")
	}
	if _, err := NewSchoolClass(uuid.New(), strings.Repeat("x", ClassNameMaxLen+1), ""); err == nil {
		t.Fatal("over-long class name should be rejected")
	}
}

func TestNewUserDefaults(t *testing.T) {
	u, err := NewUser(uuid.New(), "jdoe", "jdoe@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != RoleStudent {
		t.Fatalf("new user should default to student role, got %q", u.Role)
	}
	if u.GenderID != nil || u.SchoolClassID != nil {
		t.Fatal("references should start unset")
	}
}

func TestUserSetterBounds(t *testing.T) {
	u, err := NewUser(uuid.New(), "jdoe", "jdoe@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.SetFirstName(strings.Repeat("a", UserNamePartMax+1)); err == nil {
		t.Fatal("over-long first name should be rejected")
	}
	if err := u.SetAddress(strings.Repeat("a", UserAddressMaxLen+1)); err == nil {
		t.Fatal("over-long address should be rejected")
	}
	if err := u.SetUserName(""); err == nil {
		t.Fatal("empty user name should be rejected")
	}
	if err := u.SetFirstName(""); err != nil {
		t.Fatalf("clearing an optional field should succeed: %v", err)
	}
}

func TestAuditIsDeleted(t *testing.T) {
	var a Audit
	if a.IsDeleted() {
		t.Fatal("fresh audit should not be deleted")
	}
}
