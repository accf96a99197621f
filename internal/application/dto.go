package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/muyik/smartschool/internal/domain/entity"
)

// PagedResult carries one page of items plus the pre-paging total count.
type PagedResult[T any] struct {
	TotalCount int `json:"totalCount"`
	Items      []T `json:"items"`
}

// ListInput is the uniform page-window input of every list operation.
// MaxResultCount bounding (cap, default) is a boundary concern; the core
// accepts any value without crashing.
type ListInput struct {
	Filter         string
	Sorting        string
	SkipCount      int
	MaxResultCount int
}

type GenderDto struct {
	ID           uuid.UUID `json:"id"`
	GenderName   string    `json:"genderName"`
	Description  string    `json:"description,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

func toGenderDto(g *entity.Gender) GenderDto {
	return GenderDto{
		ID:           g.ID,
		GenderName:   g.GenderName,
		Description:  g.Description,
		CreationTime: g.CreatedAt,
	}
}

type SchoolClassDto struct {
	ID           uuid.UUID `json:"id"`
	ClassName    string    `json:"className"`
	Description  string    `json:"description,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

func toSchoolClassDto(c *entity.SchoolClass) SchoolClassDto {
	return SchoolClassDto{
		ID:           c.ID,
		ClassName:    c.ClassName,
		Description:  c.Description,
		CreationTime: c.CreatedAt,
	}
}

// UserDto is the outbound user representation. GenderName and SchoolClassName
// are display-only fields resolved at read time by the Enricher; they are
// never persisted.
type UserDto struct {
	ID              uuid.UUID  `json:"id"`
	UserName        string     `json:"userName"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	FirstName       string     `json:"firstName,omitempty"`
	MiddleName      string     `json:"middleName,omitempty"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	UserPhoto       string     `json:"userPhoto,omitempty"`
	HasLeftSchool   bool       `json:"hasLeftSchool"`
	Address         string     `json:"address,omitempty"`
	GenderID        *uuid.UUID `json:"genderId,omitempty"`
	SchoolClassID   *uuid.UUID `json:"schoolClassId,omitempty"`
	GenderName      string     `json:"genderName,omitempty"`
	SchoolClassName string     `json:"schoolClassName,omitempty"`
	CreationTime    time.Time  `json:"creationTime"`
}

func toUserDto(u *entity.User) UserDto {
	return UserDto{
		ID:            u.ID,
		UserName:      u.UserName,
		Email:         u.Email,
		Role:          u.Role,
		FirstName:     u.FirstName,
		MiddleName:    u.MiddleName,
		DateOfBirth:   u.DateOfBirth,
		UserPhoto:     u.UserPhoto,
		HasLeftSchool: u.HasLeftSchool,
		Address:       u.Address,
		GenderID:      u.GenderID,
		SchoolClassID: u.SchoolClassID,
		CreationTime:  u.CreatedAt,
	}
}

// GenderInput is shared by create and update; both carry the same fields.
type GenderInput struct {
	GenderName  string `json:"genderName" validate:"required,max=50"`
	Description string `json:"description" validate:"max=200"`
}

type SchoolClassInput struct {
	ClassName   string `json:"className" validate:"required,max=100"`
	Description string `json:"description" validate:"max=200"`
}

type CreateUserInput struct {
	UserName      string     `json:"userName" validate:"required,max=256"`
	Email         string     `json:"email" validate:"required,email,max=256"`
	Password      string     `json:"password" validate:"required,min=8,max=128"`
	Role          string     `json:"role" validate:"omitempty,oneof=admin student"`
	FirstName     string     `json:"firstName" validate:"max=50"`
	MiddleName    string     `json:"middleName" validate:"max=50"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	UserPhoto     string     `json:"userPhoto" validate:"max=500"`
	HasLeftSchool bool       `json:"hasLeftSchool"`
	Address       string     `json:"address" validate:"max=300"`
	GenderID      *uuid.UUID `json:"genderId"`
	SchoolClassID *uuid.UUID `json:"schoolClassId"`
}

type UpdateUserInput struct {
	UserName      string     `json:"userName" validate:"required,max=256"`
	Email         string     `json:"email" validate:"required,email,max=256"`
	FirstName     string     `json:"firstName" validate:"max=50"`
	MiddleName    string     `json:"middleName" validate:"max=50"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	UserPhoto     string     `json:"userPhoto" validate:"max=500"`
	HasLeftSchool bool       `json:"hasLeftSchool"`
	Address       string     `json:"address" validate:"max=300"`
	GenderID      *uuid.UUID `json:"genderId"`
	SchoolClassID *uuid.UUID `json:"schoolClassId"`
}

// ListUsersInput extends the page window with the user-specific filters.
type ListUsersInput struct {
	ListInput
	GenderID      *uuid.UUID
	SchoolClassID *uuid.UUID
	HasLeftSchool *bool
}
