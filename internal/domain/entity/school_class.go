package entity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/muyik/smartschool/pkg/apperrors"
)

const (
	ClassNameMaxLen        = 100
	ClassDescriptionMaxLen = 200
)

// SchoolClass is a reference aggregate for a class of students. Unlike Gender,
// its name and description are trimmed on every mutation, and a blank
// description is stored as absent.
type SchoolClass struct {
	ID          uuid.UUID
	ClassName   string
	Description string
	Audit
}

// NewSchoolClass constructs a SchoolClass, enforcing the name and description
// invariants on construction, the same way the setters do on every mutation.
func NewSchoolClass(id uuid.UUID, className, description string) (*SchoolClass, error) {
	c := &SchoolClass{ID: id}
	if err := c.SetClassName(className); err != nil {
		return nil, err
	}
	if err := c.SetDescription(description); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *SchoolClass) SetClassName(className string) error {
	if strings.TrimSpace(className) == "" {
		return apperrors.Invariant("className", "must not be empty or whitespace")
	}
	if len(className) > ClassNameMaxLen {
		return apperrors.Invariant("className", "must not exceed 100 characters")
	}
	c.ClassName = strings.TrimSpace(className)
	return nil
}

func (c *SchoolClass) SetDescription(description string) error {
	if len(description) > ClassDescriptionMaxLen {
		return apperrors.Invariant("description", "must not exceed 200 characters")
	}
	c.Description = strings.TrimSpace(description)
	return nil
}
