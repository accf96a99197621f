package entity

import (
	"github.com/google/uuid"

	"github.com/muyik/smartschool/pkg/apperrors"
)

const (
	GenderNameMaxLen        = 50
	GenderDescriptionMaxLen = 200
)

// Gender is a reference aggregate: a display name plus an optional
// description. Values are stored exactly as given, without trimming.
type Gender struct {
	ID          uuid.UUID
	GenderName  string
	Description string
	Audit
}

// NewGender constructs a Gender, enforcing the name and description bounds.
func NewGender(id uuid.UUID, genderName, description string) (*Gender, error) {
	g := &Gender{ID: id}
	if err := g.SetGenderName(genderName); err != nil {
		return nil, err
	}
	if err := g.SetDescription(description); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gender) SetGenderName(name string) error {
	if name == "" {
		return apperrors.Invariant("genderName", "must not be empty")
	}
	if len(name) > GenderNameMaxLen {
		return apperrors.Invariant("genderName", "must not exceed 50 characters")
	}
	g.GenderName = name
	return nil
}

func (g *Gender) SetDescription(description string) error {
	if len(description) > GenderDescriptionMaxLen {
		return apperrors.Invariant("description", "must not exceed 200 characters")
	}
	g.Description = description
	return nil
}
