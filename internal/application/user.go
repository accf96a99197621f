package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/muyik/smartschool/internal/domain/entity"
	"github.com/muyik/smartschool/internal/domain/listing"
	"github.com/muyik/smartschool/internal/domain/repository"
	"github.com/muyik/smartschool/pkg/apperrors"
	"github.com/muyik/smartschool/pkg/cqrs"
	"github.com/muyik/smartschool/pkg/helpers"
	"github.com/muyik/smartschool/pkg/validation"
)

// UserIndexer mirrors users into the search index. Indexing is best-effort:
// failures are logged, never surfaced to the write path.
type UserIndexer interface {
	Index(ctx context.Context, u UserDto) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// WelcomeMailer queues a welcome email for a newly created user.
type WelcomeMailer interface {
	PublishWelcome(ctx context.Context, email, userName string) error
}

type GetUserQuery struct {
	ID uuid.UUID
}

type ListUsersQuery struct {
	Input ListUsersInput
}

type CreateUserCommand struct {
	Input CreateUserInput
}

type UpdateUserCommand struct {
	ID    uuid.UUID
	Input UpdateUserInput
}

type DeleteUserCommand struct {
	ID uuid.UUID
}

// SetUserPhotoCommand records the URL of an already-uploaded photo.
type SetUserPhotoCommand struct {
	ID       uuid.UUID
	PhotoURL string
}

type userHandlers struct {
	users    repository.UserRepository
	genders  repository.GenderRepository
	classes  repository.SchoolClassRepository
	enricher *Enricher
	indexer  UserIndexer
	mailer   WelcomeMailer
	logger   *logrus.Logger
}

func (h *userHandlers) get(ctx context.Context, q GetUserQuery) (UserDto, error) {
	u, err := h.users.GetByID(ctx, q.ID)
	if err != nil {
		return UserDto{}, err
	}
	return h.enricher.EnrichUser(ctx, u)
}

func (h *userHandlers) list(ctx context.Context, q ListUsersQuery) (PagedResult[UserDto], error) {
	page, total, err := h.users.List(ctx, repository.UserListParams{
		Params: listing.Params{
			Filter: q.Input.Filter,
			Sort:   q.Input.Sorting,
			Skip:   q.Input.SkipCount,
			Take:   q.Input.MaxResultCount,
		},
		GenderID:      q.Input.GenderID,
		SchoolClassID: q.Input.SchoolClassID,
		HasLeftSchool: q.Input.HasLeftSchool,
	})
	if err != nil {
		return PagedResult[UserDto]{}, err
	}
	dtos, err := h.enricher.EnrichUsers(ctx, page)
	if err != nil {
		return PagedResult[UserDto]{}, err
	}
	return PagedResult[UserDto]{TotalCount: total, Items: dtos}, nil
}

func (h *userHandlers) create(ctx context.Context, cmd CreateUserCommand) (UserDto, error) {
	in := cmd.Input
	if err := validation.Struct(in); err != nil {
		return UserDto{}, err
	}
	if err := h.checkReferences(ctx, in.GenderID, in.SchoolClassID); err != nil {
		return UserDto{}, err
	}

	u, err := entity.NewUser(uuid.New(), in.UserName, in.Email)
	if err != nil {
		return UserDto{}, err
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	if err := applyUserFields(u, in.FirstName, in.MiddleName, in.UserPhoto, in.Address); err != nil {
		return UserDto{}, err
	}
	u.DateOfBirth = in.DateOfBirth
	u.HasLeftSchool = in.HasLeftSchool
	u.GenderID = in.GenderID
	u.SchoolClassID = in.SchoolClassID

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return UserDto{}, err
	}
	u.PasswordHash = hash

	if err := h.users.Insert(ctx, u); err != nil {
		return UserDto{}, err
	}

	dto, err := h.enricher.EnrichUser(ctx, u)
	if err != nil {
		return UserDto{}, err
	}
	h.afterWrite(ctx, dto)
	h.sendWelcome(ctx, dto)
	return dto, nil
}

func (h *userHandlers) update(ctx context.Context, cmd UpdateUserCommand) (UserDto, error) {
	u, err := h.users.GetByID(ctx, cmd.ID)
	if err != nil {
		return UserDto{}, err
	}
	in := cmd.Input
	if err := validation.Struct(in); err != nil {
		return UserDto{}, err
	}
	if err := h.checkReferences(ctx, in.GenderID, in.SchoolClassID); err != nil {
		return UserDto{}, err
	}

	if err := u.SetUserName(in.UserName); err != nil {
		return UserDto{}, err
	}
	if err := u.SetEmail(in.Email); err != nil {
		return UserDto{}, err
	}
	if err := applyUserFields(u, in.FirstName, in.MiddleName, in.UserPhoto, in.Address); err != nil {
		return UserDto{}, err
	}
	u.DateOfBirth = in.DateOfBirth
	u.HasLeftSchool = in.HasLeftSchool
	u.GenderID = in.GenderID
	u.SchoolClassID = in.SchoolClassID

	if err := h.users.Update(ctx, u); err != nil {
		return UserDto{}, err
	}

	dto, err := h.enricher.EnrichUser(ctx, u)
	if err != nil {
		return UserDto{}, err
	}
	h.afterWrite(ctx, dto)
	return dto, nil
}

func (h *userHandlers) setPhoto(ctx context.Context, cmd SetUserPhotoCommand) (UserDto, error) {
	u, err := h.users.GetByID(ctx, cmd.ID)
	if err != nil {
		return UserDto{}, err
	}
	if err := u.SetUserPhoto(cmd.PhotoURL); err != nil {
		return UserDto{}, err
	}
	if err := h.users.Update(ctx, u); err != nil {
		return UserDto{}, err
	}
	dto, err := h.enricher.EnrichUser(ctx, u)
	if err != nil {
		return UserDto{}, err
	}
	h.afterWrite(ctx, dto)
	return dto, nil
}

func (h *userHandlers) delete(ctx context.Context, cmd DeleteUserCommand) (struct{}, error) {
	if err := h.users.Delete(ctx, cmd.ID); err != nil {
		return struct{}{}, err
	}
	if h.indexer != nil {
		if err := h.indexer.Remove(ctx, cmd.ID); err != nil && h.logger != nil {
			h.logger.WithError(err).WithField("user_id", cmd.ID).Warn("search index removal failed")
		}
	}
	return struct{}{}, nil
}

// checkReferences rejects writes pointing at genders or classes that do not
// exist (or are deleted) right now. Historical records may still carry
// dangling references; those degrade on read via the Enricher instead.
func (h *userHandlers) checkReferences(ctx context.Context, genderID, classID *uuid.UUID) error {
	violations := make(map[string]string)
	if genderID != nil {
		if _, err := h.genders.GetByID(ctx, *genderID); err != nil {
			if !apperrors.IsNotFound(err) {
				return err
			}
			violations["genderId"] = "references an unknown gender"
		}
	}
	if classID != nil {
		if _, err := h.classes.GetByID(ctx, *classID); err != nil {
			if !apperrors.IsNotFound(err) {
				return err
			}
			violations["schoolClassId"] = "references an unknown school class"
		}
	}
	if len(violations) > 0 {
		return apperrors.NewValidation(violations)
	}
	return nil
}

func applyUserFields(u *entity.User, firstName, middleName, photo, address string) error {
	if err := u.SetFirstName(firstName); err != nil {
		return err
	}
	if err := u.SetMiddleName(middleName); err != nil {
		return err
	}
	if err := u.SetUserPhoto(photo); err != nil {
		return err
	}
	return u.SetAddress(address)
}

func (h *userHandlers) afterWrite(ctx context.Context, dto UserDto) {
	if h.indexer == nil {
		return
	}
	if err := h.indexer.Index(ctx, dto); err != nil && h.logger != nil {
		h.logger.WithError(err).WithField("user_id", dto.ID).Warn("search indexing failed")
	}
}

func (h *userHandlers) sendWelcome(ctx context.Context, dto UserDto) {
	if h.mailer == nil {
		return
	}
	if err := h.mailer.PublishWelcome(ctx, dto.Email, dto.UserName); err != nil && h.logger != nil {
		h.logger.WithError(err).WithField("email", dto.Email).Warn("welcome email publish failed")
	}
}

// UserService is the public façade for user operations.
type UserService struct {
	m *cqrs.Mediator
}

func NewUserService(m *cqrs.Mediator) *UserService {
	return &UserService{m: m}
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (UserDto, error) {
	return cqrs.Send[GetUserQuery, UserDto](ctx, s.m, GetUserQuery{ID: id})
}

func (s *UserService) List(ctx context.Context, in ListUsersInput) (PagedResult[UserDto], error) {
	return cqrs.Send[ListUsersQuery, PagedResult[UserDto]](ctx, s.m, ListUsersQuery{Input: in})
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (UserDto, error) {
	return cqrs.Send[CreateUserCommand, UserDto](ctx, s.m, CreateUserCommand{Input: in})
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (UserDto, error) {
	return cqrs.Send[UpdateUserCommand, UserDto](ctx, s.m, UpdateUserCommand{ID: id, Input: in})
}

func (s *UserService) SetPhoto(ctx context.Context, id uuid.UUID, photoURL string) (UserDto, error) {
	return cqrs.Send[SetUserPhotoCommand, UserDto](ctx, s.m, SetUserPhotoCommand{ID: id, PhotoURL: photoURL})
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := cqrs.Send[DeleteUserCommand, struct{}](ctx, s.m, DeleteUserCommand{ID: id})
	return err
}
