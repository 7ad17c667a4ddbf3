package handler

import (
	"context"
	"time"

	"skill-exchange/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db       Pinger
	cache    Pinger
	semantic bool
}

// NewHealthHandler reports database and cache reachability. cache may be nil.
func NewHealthHandler(db, cache Pinger, semantic bool) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, semantic: semantic}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	dbState := "up"
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbState = "down"
		status = fiber.StatusServiceUnavailable
	}

	cacheState := "disabled"
	if h.cache != nil {
		cacheState = "up"
		if h.cache.Ping(ctx) != nil {
			cacheState = "down"
		}
	}

	return response.Success(c, status, "", fiber.Map{
		"database":   dbState,
		"cache":      cacheState,
		"ai_enabled": h.semantic,
	})
}
