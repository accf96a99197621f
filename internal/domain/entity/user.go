package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/muyik/smartschool/pkg/apperrors"
)

const (
	UserNameMaxLen    = 256
	UserEmailMaxLen   = 256
	UserNamePartMax   = 50
	UserPhotoMaxLen   = 500
	UserAddressMaxLen = 300
)

// User roles understood by the boundary layer. Authorization decisions are
// made at the HTTP boundary; the core only stores the role.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User is the school member aggregate. GenderID and SchoolClassID are
// optional many-to-one references; deleting the referent leaves them dangling
// and reads must degrade gracefully (see application.Enricher).
//
// GenderName and SchoolClassName are never stored here: they exist only on
// the outbound DTO, resolved at read time.
type User struct {
	ID            uuid.UUID
	UserName      string
	Email         string
	PasswordHash  string
	Role          string
	FirstName     string
	MiddleName    string
	DateOfBirth   *time.Time
	UserPhoto     string
	HasLeftSchool bool
	Address       string
	GenderID      *uuid.UUID
	SchoolClassID *uuid.UUID
	Audit
}

// NewUser constructs a User with the required identity fields validated.
// Email shape validation happens in the validation layer before construction;
// the entity enforces presence and length bounds.
func NewUser(id uuid.UUID, userName, email string) (*User, error) {
	u := &User{ID: id, Role: RoleStudent}
	if err := u.SetUserName(userName); err != nil {
		return nil, err
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) SetUserName(userName string) error {
	if userName == "" {
		return apperrors.Invariant("userName", "must not be empty")
	}
	if len(userName) > UserNameMaxLen {
		return apperrors.Invariant("userName", "must not exceed 256 characters")
	}
	u.UserName = userName
	return nil
}

func (u *User) SetEmail(email string) error {
	if email == "" {
		return apperrors.Invariant("email", "must not be empty")
	}
	if len(email) > UserEmailMaxLen {
		return apperrors.Invariant("email", "must not exceed 256 characters")
	}
	u.Email = email
	return nil
}

func (u *User) SetFirstName(firstName string) error {
	if len(firstName) > UserNamePartMax {
		return apperrors.Invariant("firstName", "must not exceed 50 characters")
	}
	u.FirstName = firstName
	return nil
}

func (u *User) SetMiddleName(middleName string) error {
	if len(middleName) > UserNamePartMax {
		return apperrors.Invariant("middleName", "must not exceed 50 characters")
	}
	u.MiddleName = middleName
	return nil
}

func (u *User) SetUserPhoto(photo string) error {
	if len(photo) > UserPhotoMaxLen {
		return apperrors.Invariant("userPhoto", "must not exceed 500 characters")
	}
	u.UserPhoto = photo
	return nil
}

func (u *User) SetAddress(address string) error {
	if len(address) > UserAddressMaxLen {
		return apperrors.Invariant("address", "must not exceed 300 characters")
	}
	u.Address = address
	return nil
}
