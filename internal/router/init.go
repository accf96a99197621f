package router

import (
	"github.com/muyik/smartschool/internal/application"
	"github.com/muyik/smartschool/internal/container"
	"github.com/muyik/smartschool/internal/infrastructure/gcs"
	"github.com/muyik/smartschool/internal/infrastructure/messaging"
	"github.com/muyik/smartschool/internal/infrastructure/postgres"
	"github.com/muyik/smartschool/internal/infrastructure/search"
	handlers "github.com/muyik/smartschool/internal/interface/http"
	"github.com/muyik/smartschool/internal/router/modules"
	"github.com/muyik/smartschool/pkg/helpers"
)

// InitModules wires repositories, the dispatcher and handlers from the
// container singletons, then registers every feature module. Called once
// during startup.
func InitModules(r *Registry) error {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := postgres.NewUserRepository(pool)
	genders := postgres.NewGenderRepository(pool)
	classes := postgres.NewSchoolClassRepository(pool)

	deps := application.Deps{
		Users:   users,
		Genders: genders,
		Classes: classes,
		Logger:  logger,
	}

	var userIndex *search.UserIndex
	if es := container.GetES(); es != nil && cfg.ESUsersIndex != "" {
		userIndex = search.NewUserIndex(es, cfg.ESUsersIndex, logger)
		deps.Indexer = userIndex
	}
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		deps.Mailer = messaging.NewWelcomePublisher(pub)
	}

	m, err := application.NewMediator(deps)
	if err != nil {
		return err
	}
	container.SetMediator(m)

	var photos *gcs.PhotoStore
	if client := container.GetGCS(); client != nil && cfg.GCSBucket != "" {
		photos = gcs.NewPhotoStore(client, cfg.GCSBucket)
	}

	sessions := helpers.NewSessionStore(container.GetRedis())
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(users, container.GetJWT(), sessions, cookies, logger)))
	r.Add(modules.NewGenderModule(handlers.NewGenderHandler(application.NewGenderService(m), logger)))
	r.Add(modules.NewSchoolClassModule(handlers.NewSchoolClassHandler(application.NewSchoolClassService(m), logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(application.NewUserService(m), photos, userIndex, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return nil
}
