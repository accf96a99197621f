package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/muyik/smartschool/internal/domain/entity"
	"github.com/muyik/smartschool/internal/domain/repository"
	"github.com/muyik/smartschool/pkg/apperrors"
)

// UnknownReferenceName is substituted for the display name of a dangling
// foreign key (referent deleted after the reference was set). A single
// dangling reference must never fail an entire read.
const UnknownReferenceName = "Unknown"

// Enricher resolves a user's optional gender and school-class references to
// display names at read time.
type Enricher struct {
	genders repository.GenderRepository
	classes repository.SchoolClassRepository
}

func NewEnricher(genders repository.GenderRepository, classes repository.SchoolClassRepository) *Enricher {
	return &Enricher{genders: genders, classes: classes}
}

// EnrichUser resolves the references of a single user with point lookups.
// A NotFound on a referent is swallowed and replaced with the placeholder;
// any other store failure propagates.
func (e *Enricher) EnrichUser(ctx context.Context, u *entity.User) (UserDto, error) {
	dto := toUserDto(u)
	if u.GenderID != nil {
		g, err := e.genders.GetByID(ctx, *u.GenderID)
		switch {
		case err == nil:
			dto.GenderName = g.GenderName
		case apperrors.IsNotFound(err):
			dto.GenderName = UnknownReferenceName
		default:
			return UserDto{}, err
		}
	}
	if u.SchoolClassID != nil {
		c, err := e.classes.GetByID(ctx, *u.SchoolClassID)
		switch {
		case err == nil:
			dto.SchoolClassName = c.ClassName
		case apperrors.IsNotFound(err):
			dto.SchoolClassName = UnknownReferenceName
		default:
			return UserDto{}, err
		}
	}
	return dto, nil
}

// EnrichUsers resolves the references of a whole page, batching the distinct
// foreign keys into one name query per foreign entity type so a page of n
// users costs two lookups instead of 2n.
func (e *Enricher) EnrichUsers(ctx context.Context, users []*entity.User) ([]UserDto, error) {
	genderIDs := distinctRefs(users, func(u *entity.User) *uuid.UUID { return u.GenderID })
	classIDs := distinctRefs(users, func(u *entity.User) *uuid.UUID { return u.SchoolClassID })

	genderNames, err := e.genders.GetNamesByIDs(ctx, genderIDs)
	if err != nil {
		return nil, err
	}
	classNames, err := e.classes.GetNamesByIDs(ctx, classIDs)
	if err != nil {
		return nil, err
	}

	dtos := make([]UserDto, 0, len(users))
	for _, u := range users {
		dto := toUserDto(u)
		if u.GenderID != nil {
			dto.GenderName = nameOrUnknown(genderNames, *u.GenderID)
		}
		if u.SchoolClassID != nil {
			dto.SchoolClassName = nameOrUnknown(classNames, *u.SchoolClassID)
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func distinctRefs(users []*entity.User, ref func(*entity.User) *uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, u := range users {
		if id := ref(u); id != nil {
			if _, dup := seen[*id]; !dup {
				seen[*id] = struct{}{}
				ids = append(ids, *id)
			}
		}
	}
	return ids
}

func nameOrUnknown(names map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return UnknownReferenceName
}
