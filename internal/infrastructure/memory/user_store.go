package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muyik/smartschool/internal/domain/entity"
	"github.com/muyik/smartschool/internal/domain/listing"
	"github.com/muyik/smartschool/internal/domain/repository"
	"github.com/muyik/smartschool/pkg/apperrors"
)

var userSpec = listing.Spec[*entity.User]{
	SearchText: func(u *entity.User) []string {
		return []string{u.UserName, u.Email, u.FirstName, u.MiddleName}
	},
	Less: map[string]func(a, b *entity.User) bool{
		"username":     func(a, b *entity.User) bool { return a.UserName < b.UserName },
		"email":        func(a, b *entity.User) bool { return a.Email < b.Email },
		"firstname":    func(a, b *entity.User) bool { return a.FirstName < b.FirstName },
		"creationtime": func(a, b *entity.User) bool { return a.CreatedAt.Before(b.CreatedAt) },
	},
	DefaultKey: "username",
	TieBreak:   func(a, b *entity.User) bool { return a.ID.String() < b.ID.String() },
}

type UserStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*entity.User
}

func NewUserStore() *UserStore {
	return &UserStore{records: make(map[uuid.UUID]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	if u.DateOfBirth != nil {
		dob := *u.DateOfBirth
		cp.DateOfBirth = &dob
	}
	if u.GenderID != nil {
		gid := *u.GenderID
		cp.GenderID = &gid
	}
	if u.SchoolClassID != nil {
		cid := *u.SchoolClassID
		cp.SchoolClassID = &cid
	}
	return &cp
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.records[id]
	if !ok || u.IsDeleted() {
		return nil, apperrors.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *UserStore) GetByUserName(_ context.Context, userName string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.records {
		if !u.IsDeleted() && u.UserName == userName {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *UserStore) List(_ context.Context, p repository.UserListParams) ([]*entity.User, int, error) {
	s.mu.RLock()
	snapshot := make([]*entity.User, 0, len(s.records))
	for _, u := range s.records {
		if u.IsDeleted() {
			continue
		}
		if p.GenderID != nil && (u.GenderID == nil || *u.GenderID != *p.GenderID) {
			continue
		}
		if p.SchoolClassID != nil && (u.SchoolClassID == nil || *u.SchoolClassID != *p.SchoolClassID) {
			continue
		}
		if p.HasLeftSchool != nil && u.HasLeftSchool != *p.HasLeftSchool {
			continue
		}
		snapshot = append(snapshot, cloneUser(u))
	}
	s.mu.RUnlock()

	page, total := listing.Resolve(snapshot, userSpec, p.Params)
	return page, total, nil
}

func (s *UserStore) Insert(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.Version = 1
	s.records[u.ID] = cloneUser(u)
	return nil
}

func (s *UserStore) Update(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.records[u.ID]
	if !ok || cur.IsDeleted() {
		return apperrors.ErrNotFound
	}
	if cur.Version != u.Version {
		return apperrors.ErrVersionConflict
	}
	u.Version++
	u.UpdatedAt = time.Now().UTC()
	u.CreatedAt = cur.CreatedAt
	s.records[u.ID] = cloneUser(u)
	return nil
}

func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.records[id]
	if !ok || cur.IsDeleted() {
		return apperrors.ErrNotFound
	}
	now := time.Now().UTC()
	cur.DeletedAt = &now
	return nil
}

var _ repository.UserRepository = (*UserStore)(nil)
