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

var schoolClassSpec = listing.Spec[*entity.SchoolClass]{
	SearchText: func(c *entity.SchoolClass) []string {
		return []string{c.ClassName, c.Description}
	},
	Less: map[string]func(a, b *entity.SchoolClass) bool{
		"classname":    func(a, b *entity.SchoolClass) bool { return a.ClassName < b.ClassName },
		"description":  func(a, b *entity.SchoolClass) bool { return a.Description < b.Description },
		"creationtime": func(a, b *entity.SchoolClass) bool { return a.CreatedAt.Before(b.CreatedAt) },
	},
	DefaultKey: "classname",
	TieBreak:   func(a, b *entity.SchoolClass) bool { return a.ID.String() < b.ID.String() },
}

type SchoolClassStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*entity.SchoolClass
}

func NewSchoolClassStore() *SchoolClassStore {
	return &SchoolClassStore{records: make(map[uuid.UUID]*entity.SchoolClass)}
}

func (s *SchoolClassStore) GetByID(_ context.Context, id uuid.UUID) (*entity.SchoolClass, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.records[id]
	if !ok || c.IsDeleted() {
		return nil, apperrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *SchoolClassStore) GetNamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if c, ok := s.records[id]; ok && !c.IsDeleted() {
			names[id] = c.ClassName
		}
	}
	return names, nil
}

func (s *SchoolClassStore) List(_ context.Context, p listing.Params) ([]*entity.SchoolClass, int, error) {
	s.mu.RLock()
	snapshot := make([]*entity.SchoolClass, 0, len(s.records))
	for _, c := range s.records {
		if !c.IsDeleted() {
			cp := *c
			snapshot = append(snapshot, &cp)
		}
	}
	s.mu.RUnlock()

	page, total := listing.Resolve(snapshot, schoolClassSpec, p)
	return page, total, nil
}

func (s *SchoolClassStore) Insert(_ context.Context, c *entity.SchoolClass) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Version = 1
	cp := *c
	s.records[c.ID] = &cp
	return nil
}

func (s *SchoolClassStore) Update(_ context.Context, c *entity.SchoolClass) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.records[c.ID]
	if !ok || cur.IsDeleted() {
		return apperrors.ErrNotFound
	}
	if cur.Version != c.Version {
		return apperrors.ErrVersionConflict
	}
	c.Version++
	c.UpdatedAt = time.Now().UTC()
	c.CreatedAt = cur.CreatedAt
	cp := *c
	s.records[c.ID] = &cp
	return nil
}

func (s *SchoolClassStore) Delete(_ context.Context, id uuid.UUID) error {
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

var _ repository.SchoolClassRepository = (*SchoolClassStore)(nil)
