package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/muyik/smartschool/internal/domain/entity"
	"github.com/muyik/smartschool/internal/domain/listing"
	"github.com/muyik/smartschool/internal/domain/repository"
	"github.com/muyik/smartschool/pkg/apperrors"
)

func mustGender(t *testing.T, name string) *entity.Gender {
	t.Helper()
	g, err := entity.NewGender(uuid.New(), name, "")
	if err != nil {
		t.Fatalf("new gender: %v", err)
	}
	return g
}

func TestGenderStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewGenderStore()
	g := mustGender(t, "Male")
	if err := s.Insert(ctx, g); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if g.Version != 1 {
		t.Fatalf("version after insert = %d, want 1", g.Version)
	}
	if g.CreatedAt.IsZero() || g.UpdatedAt.IsZero() {
		t.Fatal("audit timestamps should be set on insert")
	}

	got, err := s.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.GenderName != "Male" {
		t.Fatalf("name = %q", got.GenderName)
	}
}

func TestGenderStoreVersionConflict(t *testing.T) {
	ctx := context.Background()
	s := NewGenderStore()
	g := mustGender(t, "Male")
	if err := s.Insert(ctx, g); err != nil {
		t.Fatalf("insert: %v", err)
	}

	a, _ := s.GetByID(ctx, g.ID)
	b, _ := s.GetByID(ctx, g.ID)

	if err := a.SetGenderName("Mann"); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(ctx, a); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if a.Version != 2 {
		t.Fatalf("version after update = %d, want 2", a.Version)
	}

	if err := b.SetGenderName("Homme"); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(ctx, b); !errors.Is(err, apperrors.ErrVersionConflict) {
		t.Fatalf("stale update error = %v, want ErrVersionConflict", err)
	}

	// The winner's write survives.
	cur, _ := s.GetByID(ctx, g.ID)
	if cur.GenderName != "Mann" {
		t.Fatalf("name = %q, want Mann", cur.GenderName)
	}
}

func TestGenderStoreSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := NewGenderStore()
	g := mustGender(t, "Male")
	_ = s.Insert(ctx, g)

	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetByID(ctx, g.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("get after delete = %v, want not found", err)
	}
	// Delete is not idempotent: the second call reports the absence.
	if err := s.Delete(ctx, g.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("second delete = %v, want not found", err)
	}
	if err := s.Update(ctx, g); !apperrors.IsNotFound(err) {
		t.Fatalf("update after delete = %v, want not found", err)
	}

	_, total, err := s.List(ctx, listing.Params{Take: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Fatalf("deleted records should not be listed, total = %d", total)
	}
}

func TestGenderStoreGetNamesByIDsSkipsMissingAndDeleted(t *testing.T) {
	ctx := context.Background()
	s := NewGenderStore()
	male := mustGender(t, "Male")
	female := mustGender(t, "Female")
	_ = s.Insert(ctx, male)
	_ = s.Insert(ctx, female)
	_ = s.Delete(ctx, female.ID)

	names, err := s.GetNamesByIDs(ctx, []uuid.UUID{male.ID, female.ID, uuid.New()})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[male.ID] != "Male" {
		t.Fatalf("names = %v", names)
	}
}

func TestUserStoreListFilters(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	genderID := uuid.New()
	classID := uuid.New()

	add := func(userName, email string, gender *uuid.UUID, left bool) *entity.User {
		t.Helper()
		u, err := entity.NewUser(uuid.New(), userName, email)
		if err != nil {
			t.Fatal(err)
		}
		u.GenderID = gender
		u.HasLeftSchool = left
		if err := s.Insert(ctx, u); err != nil {
			t.Fatal(err)
		}
		return u
	}

	add("alice", "alice@school.test", &genderID, false)
	add("bob", "bob@school.test", nil, true)
	add("carol", "carol@school.test", &genderID, true)

	page, total, err := s.List(ctx, repository.UserListParams{
		Params:   listing.Params{Take: 10},
		GenderID: &genderID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(page) != 2 {
		t.Fatalf("gender filter: total=%d len=%d", total, len(page))
	}

	left := true
	page, total, err = s.List(ctx, repository.UserListParams{
		Params:        listing.Params{Take: 10},
		GenderID:      &genderID,
		HasLeftSchool: &left,
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || page[0].UserName != "carol" {
		t.Fatalf("combined filter: total=%d page=%v", total, page)
	}

	page, total, err = s.List(ctx, repository.UserListParams{
		Params:        listing.Params{Take: 10},
		SchoolClassID: &classID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(page) != 0 {
		t.Fatalf("unmatched class filter: total=%d len=%d", total, len(page))
	}
}

func TestUserStoreCloneIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	u, err := entity.NewUser(uuid.New(), "alice", "alice@school.test")
	if err != nil {
		t.Fatal(err)
	}
	gid := uuid.New()
	u.GenderID = &gid
	if err := s.Insert(ctx, u); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetByID(ctx, u.ID)
	*got.GenderID = uuid.New()
	got.UserName = "mallory"

	again, _ := s.GetByID(ctx, u.ID)
	if again.UserName != "alice" || *again.GenderID != gid {
		t.Fatal("mutating a returned record must not affect the store")
	}
}
