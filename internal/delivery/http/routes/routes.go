package routes

import (
	"skill-exchange/internal/delivery/http/handler"
	v1 "skill-exchange/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// RootRoutes is implemented by handlers mounted outside /api/v1.
type RootRoutes interface {
	RegisterRoutes(r fiber.Router)
}

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	root   []RootRoutes
}

func NewRegistry(health *handler.HealthHandler, api v1.Handlers, root ...RootRoutes) *Registry {
	return &Registry{health: health, v1: api, root: root}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	for _, rr := range r.root {
		if rr != nil {
			rr.RegisterRoutes(app)
		}
	}
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}
