package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/muyik/smartschool/internal/domain/entity"
	"github.com/muyik/smartschool/internal/infrastructure/memory"
	"github.com/muyik/smartschool/pkg/apperrors"
	"github.com/muyik/smartschool/pkg/cqrs"
)

type fakeIndexer struct {
	mu      sync.Mutex
	indexed []uuid.UUID
	removed []uuid.UUID
}

func (f *fakeIndexer) Index(_ context.Context, u UserDto) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed = append(f.indexed, u.ID)
	return nil
}

func (f *fakeIndexer) Remove(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) PublishWelcome(_ context.Context, email, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, email)
	return nil
}

type fixture struct {
	genders *memory.GenderStore
	classes *memory.SchoolClassStore
	users   *memory.UserStore
	indexer *fakeIndexer
	mailer  *fakeMailer

	gender  *GenderService
	class   *SchoolClassService
	user    *UserService
	mediatr *cqrs.Mediator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		genders: memory.NewGenderStore(),
		classes: memory.NewSchoolClassStore(),
		users:   memory.NewUserStore(),
		indexer: &fakeIndexer{},
		mailer:  &fakeMailer{},
	}
	logger := logrus.New()
	m, err := NewMediator(Deps{
		Users:   f.users,
		Genders: f.genders,
		Classes: f.classes,
		Indexer: f.indexer,
		Mailer:  f.mailer,
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("mediator: %v", err)
	}
	f.mediatr = m
	f.gender = NewGenderService(m)
	f.class = NewSchoolClassService(m)
	f.user = NewUserService(m)
	return f
}

func (f *fixture) createGender(t *testing.T, name string) GenderDto {
	t.Helper()
	dto, err := f.gender.Create(context.Background(), GenderInput{GenderName: name})
	if err != nil {
		t.Fatalf("create gender %q: %v", name, err)
	}
	return dto
}

func (f *fixture) createClass(t *testing.T, name string) SchoolClassDto {
	t.Helper()
	dto, err := f.class.Create(context.Background(), SchoolClassInput{ClassName: name})
	if err != nil {
		t.Fatalf("create class %q: %v", name, err)
	}
	return dto
}

func (f *fixture) createUser(t *testing.T, in CreateUserInput) UserDto {
	t.Helper()
	if in.Password == "" {
		in.Password = "password123"
	}
	dto, err := f.user.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create user %q: %v", in.UserName, err)
	}
	return dto
}

func TestGenderCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created := f.createGender(t, "Male")
	if created.GenderName != "Male" {
		t.Fatalf("created = %+v", created)
	}

	got, err := f.gender.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID || got.CreationTime.IsZero() {
		t.Fatalf("got = %+v", got)
	}

	updated, err := f.gender.Update(ctx, created.ID, GenderInput{GenderName: "Other", Description: "unspecified"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.GenderName != "Other" || updated.Description != "unspecified" {
		t.Fatalf("updated = %+v", updated)
	}

	if err := f.gender.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.gender.Get(ctx, created.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("get after delete = %v, want not found", err)
	}
	if err := f.gender.Delete(ctx, created.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("second delete = %v, want not found", err)
	}
}

func TestGenderCreateAggregatesViolations(t *testing.T) {
	f := newFixture(t)
	_, err := f.gender.Create(context.Background(), GenderInput{
		GenderName:  "",
		Description: strings.Repeat("d", 201),
	})
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %T, want ValidationError", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("violations = %v, want both fields", ve.Violations)
	}
}

func TestGenderUpdateMissingIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.gender.Update(context.Background(), uuid.New(), GenderInput{GenderName: "X"})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestGenderListFilterSortPage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, n := range []string{"Male", "Female", "male variant"} {
		f.createGender(t, n)
	}

	page, err := f.gender.List(ctx, ListInput{Filter: "male", MaxResultCount: 10})
	if err != nil {
		t.Fatal(err)
	}
	// Case-sensitive: "Male" does not contain "male".
	if page.TotalCount != 1 || page.Items[0].GenderName != "male variant" {
		t.Fatalf("page = %+v", page)
	}

	page, err = f.gender.List(ctx, ListInput{Sorting: "genderName", SkipCount: 1, MaxResultCount: 1})
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalCount != 3 || len(page.Items) != 1 || page.Items[0].GenderName != "Male" {
		t.Fatalf("page = %+v", page)
	}
}

func TestSchoolClassTrimsOnWrite(t *testing.T) {
	f := newFixture(t)
	dto, err := f.class.Create(context.Background(), SchoolClassInput{ClassName: "  Class 1A  "})
	if err != nil {
		t.Fatal(err)
	}
	if dto.ClassName != "Class 1A" {
		t.Fatalf("class name = %q, want trimmed", dto.ClassName)
	}
}

func TestUserCreateResolvesReferencesAndHashesPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := f.createGender(t, "Female")
	c := f.createClass(t, "Class 2B")

	dto := f.createUser(t, CreateUserInput{
		UserName:      "alice",
		Email:         "alice@school.test",
		GenderID:      &g.ID,
		SchoolClassID: &c.ID,
	})
	if dto.GenderName != "Female" || dto.SchoolClassName != "Class 2B" {
		t.Fatalf("dto = %+v", dto)
	}
	if dto.Role != entity.RoleStudent {
		t.Fatalf("role = %q, want student default", dto.Role)
	}

	stored, err := f.users.GetByID(ctx, dto.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "password123" {
		t.Fatal("password must be stored hashed")
	}

	if len(f.indexer.indexed) != 1 || f.indexer.indexed[0] != dto.ID {
		t.Fatalf("indexer calls = %v", f.indexer.indexed)
	}
	if len(f.mailer.sent) != 1 || f.mailer.sent[0] != "alice@school.test" {
		t.Fatalf("mailer calls = %v", f.mailer.sent)
	}
}

func TestUserCreateRejectsUnknownReferences(t *testing.T) {
	f := newFixture(t)
	badGender := uuid.New()
	badClass := uuid.New()
	_, err := f.user.Create(context.Background(), CreateUserInput{
		UserName:      "bob",
		Email:         "bob@school.test",
		Password:      "password123",
		GenderID:      &badGender,
		SchoolClassID: &badClass,
	})
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %T (%v), want ValidationError", err, err)
	}
	if _, ok := ve.Violations["genderId"]; !ok {
		t.Errorf("missing genderId violation: %v", ve.Violations)
	}
	if _, ok := ve.Violations["schoolClassId"]; !ok {
		t.Errorf("missing schoolClassId violation: %v", ve.Violations)
	}
}

func TestUserGetDegradesDanglingReferenceToUnknown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := f.createGender(t, "Male")
	dto := f.createUser(t, CreateUserInput{
		UserName: "carl",
		Email:    "carl@school.test",
		GenderID: &g.ID,
	})

	// Deleting the gender leaves the user's reference dangling.
	if err := f.gender.Delete(ctx, g.ID); err != nil {
		t.Fatal(err)
	}

	got, err := f.user.Get(ctx, dto.ID)
	if err != nil {
		t.Fatalf("get should not fail on a dangling reference: %v", err)
	}
	if got.GenderName != UnknownReferenceName {
		t.Fatalf("gender name = %q, want %q", got.GenderName, UnknownReferenceName)
	}
}

func TestUserListEnrichesAndDegradesPerRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	male := f.createGender(t, "Male")
	female := f.createGender(t, "Female")

	f.createUser(t, CreateUserInput{UserName: "anna", Email: "anna@school.test", GenderID: &female.ID})
	f.createUser(t, CreateUserInput{UserName: "bert", Email: "bert@school.test", GenderID: &male.ID})
	f.createUser(t, CreateUserInput{UserName: "cleo", Email: "cleo@school.test"})

	if err := f.gender.Delete(ctx, male.ID); err != nil {
		t.Fatal(err)
	}

	page, err := f.user.List(ctx, ListUsersInput{ListInput: ListInput{Sorting: "userName", MaxResultCount: 10}})
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalCount != 3 {
		t.Fatalf("total = %d", page.TotalCount)
	}
	byName := map[string]UserDto{}
	for _, u := range page.Items {
		byName[u.UserName] = u
	}
	if byName["anna"].GenderName != "Female" {
		t.Errorf("anna gender = %q", byName["anna"].GenderName)
	}
	if byName["bert"].GenderName != UnknownReferenceName {
		t.Errorf("bert gender = %q, want %q", byName["bert"].GenderName, UnknownReferenceName)
	}
	if byName["cleo"].GenderName != "" {
		t.Errorf("cleo gender = %q, want empty for unset reference", byName["cleo"].GenderName)
	}
}

func TestUserListFiltersByReferenceAndStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := f.createGender(t, "Male")

	left := f.createUser(t, CreateUserInput{UserName: "dave", Email: "dave@school.test", GenderID: &g.ID, HasLeftSchool: true})
	f.createUser(t, CreateUserInput{UserName: "erin", Email: "erin@school.test", GenderID: &g.ID})
	f.createUser(t, CreateUserInput{UserName: "fred", Email: "fred@school.test"})

	hasLeft := true
	page, err := f.user.List(ctx, ListUsersInput{
		ListInput:     ListInput{MaxResultCount: 10},
		GenderID:      &g.ID,
		HasLeftSchool: &hasLeft,
	})
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalCount != 1 || page.Items[0].ID != left.ID {
		t.Fatalf("page = %+v", page)
	}
}

func TestUserUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dto := f.createUser(t, CreateUserInput{UserName: "gina", Email: "gina@school.test"})

	updated, err := f.user.Update(ctx, dto.ID, UpdateUserInput{
		UserName:  "gina",
		Email:     "gina@school.test",
		FirstName: "Gina",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Gina" {
		t.Fatalf("updated = %+v", updated)
	}

	if err := f.user.Delete(ctx, dto.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.user.Get(ctx, dto.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("get after delete = %v, want not found", err)
	}
	if err := f.user.Delete(ctx, dto.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("second delete = %v, want not found", err)
	}
	if len(f.indexer.removed) != 1 || f.indexer.removed[0] != dto.ID {
		t.Fatalf("index removals = %v", f.indexer.removed)
	}
}

func TestUserSetPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dto := f.createUser(t, CreateUserInput{UserName: "hugo", Email: "hugo@school.test"})

	url := "https://storage.googleapis.com/bucket/photos/x.png"
	updated, err := f.user.SetPhoto(ctx, dto.ID, url)
	if err != nil {
		t.Fatalf("set photo: %v", err)
	}
	if updated.UserPhoto != url {
		t.Fatalf("photo = %q", updated.UserPhoto)
	}
}

func TestUserCreateValidationAggregates(t *testing.T) {
	f := newFixture(t)
	_, err := f.user.Create(context.Background(), CreateUserInput{
		UserName: "",
		Email:    "not-an-email",
		Password: "short",
		Role:     "headmaster",
	})
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %T, want ValidationError", err)
	}
	for _, field := range []string{"userName", "email", "password", "role"} {
		if _, ok := ve.Violations[field]; !ok {
			t.Errorf("missing violation for %q: %v", field, ve.Violations)
		}
	}
}
