package router

import (
	"github.com/oksasatya/onesteptask/internal/container"
	handlers "github.com/oksasatya/onesteptask/internal/interface/http"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
	"github.com/oksasatya/onesteptask/internal/router/modules"
)

// InitModules builds every handler from the container and registers its
// module. Call once, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	bypass := middleware.AllowAdmin()
	if cfg.RateLimitBypassPriv {
		bypass = middleware.AnyAllow(bypass, middleware.AllowPrivateIP())
	}

	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(c.Auth, c.JWT, c.Cookies, c.Logger),
		c.Redis, cfg.LoginRateLimit,
	))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.Auth, c.Users, c.Tasks, c.Logger)))
	r.Add(modules.NewTaskModule(
		handlers.NewTaskHandler(c.Tasks, c.Logger),
		c.Redis, cfg.SubmitRateLimit, bypass,
	))
	r.Add(modules.NewContentModule(handlers.NewContentHandler(c.Testimonials, c.Content, c.Logger)))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
