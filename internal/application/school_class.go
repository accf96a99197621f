package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/muyik/smartschool/internal/domain/entity"
	"github.com/muyik/smartschool/internal/domain/listing"
	"github.com/muyik/smartschool/internal/domain/repository"
	"github.com/muyik/smartschool/pkg/cqrs"
	"github.com/muyik/smartschool/pkg/validation"
)

type GetSchoolClassQuery struct {
	ID uuid.UUID
}

type ListSchoolClassesQuery struct {
	Input ListInput
}

type CreateSchoolClassCommand struct {
	Input SchoolClassInput
}

type UpdateSchoolClassCommand struct {
	ID    uuid.UUID
	Input SchoolClassInput
}

type DeleteSchoolClassCommand struct {
	ID uuid.UUID
}

type schoolClassHandlers struct {
	classes repository.SchoolClassRepository
}

func (h *schoolClassHandlers) get(ctx context.Context, q GetSchoolClassQuery) (SchoolClassDto, error) {
	c, err := h.classes.GetByID(ctx, q.ID)
	if err != nil {
		return SchoolClassDto{}, err
	}
	return toSchoolClassDto(c), nil
}

func (h *schoolClassHandlers) list(ctx context.Context, q ListSchoolClassesQuery) (PagedResult[SchoolClassDto], error) {
	page, total, err := h.classes.List(ctx, listing.Params{
		Filter: q.Input.Filter,
		Sort:   q.Input.Sorting,
		Skip:   q.Input.SkipCount,
		Take:   q.Input.MaxResultCount,
	})
	if err != nil {
		return PagedResult[SchoolClassDto]{}, err
	}
	dtos := make([]SchoolClassDto, 0, len(page))
	for _, c := range page {
		dtos = append(dtos, toSchoolClassDto(c))
	}
	return PagedResult[SchoolClassDto]{TotalCount: total, Items: dtos}, nil
}

func (h *schoolClassHandlers) create(ctx context.Context, cmd CreateSchoolClassCommand) (SchoolClassDto, error) {
	if err := validation.Struct(cmd.Input); err != nil {
		return SchoolClassDto{}, err
	}
	c, err := entity.NewSchoolClass(uuid.New(), cmd.Input.ClassName, cmd.Input.Description)
	if err != nil {
		return SchoolClassDto{}, err
	}
	if err := h.classes.Insert(ctx, c); err != nil {
		return SchoolClassDto{}, err
	}
	return toSchoolClassDto(c), nil
}

func (h *schoolClassHandlers) update(ctx context.Context, cmd UpdateSchoolClassCommand) (SchoolClassDto, error) {
	c, err := h.classes.GetByID(ctx, cmd.ID)
	if err != nil {
		return SchoolClassDto{}, err
	}
	if err := validation.Struct(cmd.Input); err != nil {
		return SchoolClassDto{}, err
	}
	if err := c.SetClassName(cmd.Input.ClassName); err != nil {
		return SchoolClassDto{}, err
	}
	if err := c.SetDescription(cmd.Input.Description); err != nil {
		return SchoolClassDto{}, err
	}
	if err := h.classes.Update(ctx, c); err != nil {
		return SchoolClassDto{}, err
	}
	return toSchoolClassDto(c), nil
}

func (h *schoolClassHandlers) delete(ctx context.Context, cmd DeleteSchoolClassCommand) (struct{}, error) {
	return struct{}{}, h.classes.Delete(ctx, cmd.ID)
}

func registerSchoolClassHandlers(m *cqrs.Mediator, classes repository.SchoolClassRepository) error {
	h := &schoolClassHandlers{classes: classes}
	if err := cqrs.Register(m, h.get); err != nil {
		return err
	}
	if err := cqrs.Register(m, h.list); err != nil {
		return err
	}
	if err := cqrs.Register(m, h.create); err != nil {
		return err
	}
	if err := cqrs.Register(m, h.update); err != nil {
		return err
	}
	return cqrs.Register(m, h.delete)
}

// SchoolClassService is the public façade for class operations.
type SchoolClassService struct {
	m *cqrs.Mediator
}

func NewSchoolClassService(m *cqrs.Mediator) *SchoolClassService {
	return &SchoolClassService{m: m}
}

func (s *SchoolClassService) Get(ctx context.Context, id uuid.UUID) (SchoolClassDto, error) {
	return cqrs.Send[GetSchoolClassQuery, SchoolClassDto](ctx, s.m, GetSchoolClassQuery{ID: id})
}

func (s *SchoolClassService) List(ctx context.Context, in ListInput) (PagedResult[SchoolClassDto], error) {
	return cqrs.Send[ListSchoolClassesQuery, PagedResult[SchoolClassDto]](ctx, s.m, ListSchoolClassesQuery{Input: in})
}

func (s *SchoolClassService) Create(ctx context.Context, in SchoolClassInput) (SchoolClassDto, error) {
	return cqrs.Send[CreateSchoolClassCommand, SchoolClassDto](ctx, s.m, CreateSchoolClassCommand{Input: in})
}

func (s *SchoolClassService) Update(ctx context.Context, id uuid.UUID, in SchoolClassInput) (SchoolClassDto, error) {
	return cqrs.Send[UpdateSchoolClassCommand, SchoolClassDto](ctx, s.m, UpdateSchoolClassCommand{ID: id, Input: in})
}

func (s *SchoolClassService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := cqrs.Send[DeleteSchoolClassCommand, struct{}](ctx, s.m, DeleteSchoolClassCommand{ID: id})
	return err
}
