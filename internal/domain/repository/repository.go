// Package repository defines the persistence contracts for the three
// aggregates. Implementations must exclude soft-deleted records from every
// read, bump the entity Version on update with a compare-and-swap, and keep
// Delete non-idempotent: soft-deleting an already-deleted record fails with
// apperrors.ErrNotFound.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/muyik/smartschool/internal/domain/entity"
	"github.com/muyik/smartschool/internal/domain/listing"
)

// GenderRepository persists Gender aggregates.
type GenderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Gender, error)
	// GetNamesByIDs resolves display names for a set of ids in one query.
	// Missing or deleted ids are simply absent from the result map.
	GetNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	List(ctx context.Context, p listing.Params) ([]*entity.Gender, int, error)
	Insert(ctx context.Context, g *entity.Gender) error
	Update(ctx context.Context, g *entity.Gender) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SchoolClassRepository persists SchoolClass aggregates.
type SchoolClassRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SchoolClass, error)
	GetNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	List(ctx context.Context, p listing.Params) ([]*entity.SchoolClass, int, error)
	Insert(ctx context.Context, c *entity.SchoolClass) error
	Update(ctx context.Context, c *entity.SchoolClass) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserListParams extends the common page window with the user-specific
// reference filters.
type UserListParams struct {
	listing.Params
	GenderID      *uuid.UUID
	SchoolClassID *uuid.UUID
	HasLeftSchool *bool
}

// UserRepository persists User aggregates.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// GetByUserName is used by the auth boundary; it observes soft deletes
	// like every other read.
	GetByUserName(ctx context.Context, userName string) (*entity.User, error)
	List(ctx context.Context, p UserListParams) ([]*entity.User, int, error)
	Insert(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
