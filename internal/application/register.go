package application

import (
	"github.com/sirupsen/logrus"

	"github.com/muyik/smartschool/internal/domain/repository"
	"github.com/muyik/smartschool/pkg/cqrs"
)

// Deps carries everything the handlers need. Indexer and Mailer are optional;
// when nil the corresponding side effects are skipped.
type Deps struct {
	Users   repository.UserRepository
	Genders repository.GenderRepository
	Classes repository.SchoolClassRepository
	Indexer UserIndexer
	Mailer  WelcomeMailer
	Logger  *logrus.Logger
}

// NewMediator builds the dispatcher with every request handler registered.
// A duplicate registration is a wiring bug and fails construction.
func NewMediator(d Deps) (*cqrs.Mediator, error) {
	m := cqrs.New()
	if err := registerGenderHandlers(m, d.Genders); err != nil {
		return nil, err
	}
	if err := registerSchoolClassHandlers(m, d.Classes); err != nil {
		return nil, err
	}
	if err := registerUserHandlers(m, d); err != nil {
		return nil, err
	}
	return m, nil
}

func registerUserHandlers(m *cqrs.Mediator, d Deps) error {
	h := &userHandlers{
		users:    d.Users,
		genders:  d.Genders,
		classes:  d.Classes,
		enricher: NewEnricher(d.Genders, d.Classes),
		indexer:  d.Indexer,
		mailer:   d.Mailer,
		logger:   d.Logger,
	}
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
	if err := cqrs.Register(m, h.setPhoto); err != nil {
		return err
	}
	return cqrs.Register(m, h.delete)
}
