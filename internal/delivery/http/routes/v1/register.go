package v1

import (
	"skill-exchange/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Match   *handler.MatchHandler
	Chat    *handler.ChatHandler
	Rating  *handler.RatingHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(r)
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(r)
	}
	if h.Chat != nil {
		h.Chat.RegisterRoutes(r)
	}
	if h.Rating != nil {
		h.Rating.RegisterRoutes(r)
	}
}
