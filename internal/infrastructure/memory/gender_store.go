// Package memory provides map-backed implementations of the repository
// contracts. They share soft-delete, version-CAS, and list-resolution
// semantics with the postgres implementations and back the test suite and the
// demo seeding.
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

var genderSpec = listing.Spec[*entity.Gender]{
	SearchText: func(g *entity.Gender) []string {
		return []string{g.GenderName, g.Description}
	},
	Less: map[string]func(a, b *entity.Gender) bool{
		"gendername":   func(a, b *entity.Gender) bool { return a.GenderName < b.GenderName },
		"description":  func(a, b *entity.Gender) bool { return a.Description < b.Description },
		"creationtime": func(a, b *entity.Gender) bool { return a.CreatedAt.Before(b.CreatedAt) },
	},
	DefaultKey: "gendername",
	TieBreak:   func(a, b *entity.Gender) bool { return a.ID.String() < b.ID.String() },
}

type GenderStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*entity.Gender
}

func NewGenderStore() *GenderStore {
	return &GenderStore{records: make(map[uuid.UUID]*entity.Gender)}
}

func (s *GenderStore) GetByID(_ context.Context, id uuid.UUID) (*entity.Gender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.records[id]
	if !ok || g.IsDeleted() {
		return nil, apperrors.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *GenderStore) GetNamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if g, ok := s.records[id]; ok && !g.IsDeleted() {
			names[id] = g.GenderName
		}
	}
	return names, nil
}

func (s *GenderStore) List(_ context.Context, p listing.Params) ([]*entity.Gender, int, error) {
	s.mu.RLock()
	snapshot := make([]*entity.Gender, 0, len(s.records))
	for _, g := range s.records {
		if !g.IsDeleted() {
			cp := *g
			snapshot = append(snapshot, &cp)
		}
	}
	s.mu.RUnlock()

	page, total := listing.Resolve(snapshot, genderSpec, p)
	return page, total, nil
}

func (s *GenderStore) Insert(_ context.Context, g *entity.Gender) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	g.Version = 1
	cp := *g
	s.records[g.ID] = &cp
	return nil
}

func (s *GenderStore) Update(_ context.Context, g *entity.Gender) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.records[g.ID]
	if !ok || cur.IsDeleted() {
		return apperrors.ErrNotFound
	}
	if cur.Version != g.Version {
		return apperrors.ErrVersionConflict
	}
	g.Version++
	g.UpdatedAt = time.Now().UTC()
	g.CreatedAt = cur.CreatedAt
	cp := *g
	s.records[g.ID] = &cp
	return nil
}

func (s *GenderStore) Delete(_ context.Context, id uuid.UUID) error {
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

var _ repository.GenderRepository = (*GenderStore)(nil)
