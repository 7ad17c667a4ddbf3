package handler

import (
	"strconv"
	"strings"

	"skill-exchange/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// idParam parses a positive integer path parameter.
func idParam(c fiber.Ctx, name, label string) (int64, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, label+" "+raw+" invalid", nil, err)
	}
	return id, nil
}

func actorID(c fiber.Ctx) (int64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}
