package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/config"
	"github.com/oksasatya/onesteptask/internal/application"
	"github.com/oksasatya/onesteptask/internal/domain/repository"
	"github.com/oksasatya/onesteptask/pkg/helpers"
)

// Deps are the infrastructure pieces built by the entrypoint. Redis,
// TaskIndex and Notifier are optional.
type Deps struct {
	Config       *config.Config
	Logger       *logrus.Logger
	Store        repository.Store
	SessionStore repository.SessionStore
	Redis        *redis.Client
	TaskIndex    application.TaskIndex
	Notifier     application.TaskNotifier
}

// Container holds every constructed component the router wires into
// modules. It is built once per process (or per test).
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Store   repository.Store
	Redis   *redis.Client
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager

	Credentials  *application.Credentials
	Sessions     *application.Sessions
	Auth         *application.AuthService
	Tasks        *application.TaskService
	Testimonials *application.TestimonialService
	Content      *application.ContentService
	Users        *application.UserService
	Seeder       *application.Seeder
}

func New(d Deps) *Container {
	cfg := d.Config
	creds := application.NewCredentials(d.Store.Users, d.Store.Admins)
	sessions := application.NewSessions(d.SessionStore, cfg.SessionTTL, d.Logger)

	tasks := application.NewTaskService(d.Store.Tasks, d.Store.Admins, d.Logger)
	tasks.Index = d.TaskIndex
	tasks.Notifier = d.Notifier

	return &Container{
		Config:  cfg,
		Logger:  d.Logger,
		Store:   d.Store,
		Redis:   d.Redis,
		JWT:     helpers.NewJWTManager(cfg.SessionSecret, cfg.AppName),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),

		Credentials:  creds,
		Sessions:     sessions,
		Auth:         application.NewAuthService(d.Store.Users, d.Store.Admins, creds, sessions, d.Logger),
		Tasks:        tasks,
		Testimonials: application.NewTestimonialService(d.Store.Testimonials),
		Content:      application.NewContentService(d.Store.PageContents),
		Users:        application.NewUserService(d.Store.Users),
		Seeder: application.NewSeeder(d.Store, creds, application.AdminSeed{
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
			Email:    cfg.AdminEmail,
			Name:     cfg.AdminName,
		}, d.Logger),
	}
}
