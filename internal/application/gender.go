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

// Gender queries and commands. Each request is a uniquely-typed value routed
// through the mediator to exactly one handler.

type GetGenderQuery struct {
	ID uuid.UUID
}

type ListGendersQuery struct {
	Input ListInput
}

type CreateGenderCommand struct {
	Input GenderInput
}

type UpdateGenderCommand struct {
	ID    uuid.UUID
	Input GenderInput
}

type DeleteGenderCommand struct {
	ID uuid.UUID
}

type genderHandlers struct {
	genders repository.GenderRepository
}

func (h *genderHandlers) get(ctx context.Context, q GetGenderQuery) (GenderDto, error) {
	g, err := h.genders.GetByID(ctx, q.ID)
	if err != nil {
		return GenderDto{}, err
	}
	return toGenderDto(g), nil
}

func (h *genderHandlers) list(ctx context.Context, q ListGendersQuery) (PagedResult[GenderDto], error) {
	page, total, err := h.genders.List(ctx, listing.Params{
		Filter: q.Input.Filter,
		Sort:   q.Input.Sorting,
		Skip:   q.Input.SkipCount,
		Take:   q.Input.MaxResultCount,
	})
	if err != nil {
		return PagedResult[GenderDto]{}, err
	}
	dtos := make([]GenderDto, 0, len(page))
	for _, g := range page {
		dtos = append(dtos, toGenderDto(g))
	}
	return PagedResult[GenderDto]{TotalCount: total, Items: dtos}, nil
}

func (h *genderHandlers) create(ctx context.Context, cmd CreateGenderCommand) (GenderDto, error) {
	if err := validation.Struct(cmd.Input); err != nil {
		return GenderDto{}, err
	}
	g, err := entity.NewGender(uuid.New(), cmd.Input.GenderName, cmd.Input.Description)
	if err != nil {
		return GenderDto{}, err
	}
	if err := h.genders.Insert(ctx, g); err != nil {
		return GenderDto{}, err
	}
	return toGenderDto(g), nil
}

func (h *genderHandlers) update(ctx context.Context, cmd UpdateGenderCommand) (GenderDto, error) {
	g, err := h.genders.GetByID(ctx, cmd.ID)
	if err != nil {
		return GenderDto{}, err
	}
	if err := validation.Struct(cmd.Input); err != nil {
		return GenderDto{}, err
	}
	if err := g.SetGenderName(cmd.Input.GenderName); err != nil {
		return GenderDto{}, err
	}
	if err := g.SetDescription(cmd.Input.Description); err != nil {
		return GenderDto{}, err
	}
	if err := h.genders.Update(ctx, g); err != nil {
		return GenderDto{}, err
	}
	return toGenderDto(g), nil
}

func (h *genderHandlers) delete(ctx context.Context, cmd DeleteGenderCommand) (struct{}, error) {
	return struct{}{}, h.genders.Delete(ctx, cmd.ID)
}

func registerGenderHandlers(m *cqrs.Mediator, genders repository.GenderRepository) error {
	h := &genderHandlers{genders: genders}
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

// GenderService is the public façade: it builds request values and forwards
// them to the dispatcher, holding no state between calls.
type GenderService struct {
	m *cqrs.Mediator
}

func NewGenderService(m *cqrs.Mediator) *GenderService {
	return &GenderService{m: m}
}

func (s *GenderService) Get(ctx context.Context, id uuid.UUID) (GenderDto, error) {
	return cqrs.Send[GetGenderQuery, GenderDto](ctx, s.m, GetGenderQuery{ID: id})
}

func (s *GenderService) List(ctx context.Context, in ListInput) (PagedResult[GenderDto], error) {
	return cqrs.Send[ListGendersQuery, PagedResult[GenderDto]](ctx, s.m, ListGendersQuery{Input: in})
}

func (s *GenderService) Create(ctx context.Context, in GenderInput) (GenderDto, error) {
	return cqrs.Send[CreateGenderCommand, GenderDto](ctx, s.m, CreateGenderCommand{Input: in})
}

func (s *GenderService) Update(ctx context.Context, id uuid.UUID, in GenderInput) (GenderDto, error) {
	return cqrs.Send[UpdateGenderCommand, GenderDto](ctx, s.m, UpdateGenderCommand{ID: id, Input: in})
}

func (s *GenderService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := cqrs.Send[DeleteGenderCommand, struct{}](ctx, s.m, DeleteGenderCommand{ID: id})
	return err
}
