package handler

import (
	"context"
	"errors"

	"skill-exchange/internal/delivery/http/dto"
	"skill-exchange/internal/delivery/http/middleware"
	"skill-exchange/internal/domain/matching"
	"skill-exchange/internal/pkg/response"
	ucmatch "skill-exchange/internal/usecase/match"

	"github.com/gofiber/fiber/v3"
)

type MatchUsecase interface {
	FindMatches(ctx context.Context, userID int64) (matching.Discovery, error)
}

type MatchHandler struct {
	uc MatchUsecase
}

func NewMatchHandler(uc MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matches/:user_id", h.GetMatches)
}

// GetMatches writes {matches, count, ai_enabled} without the usual envelope.
func (h *MatchHandler) GetMatches(c fiber.Ctx) error {
	userID, err := idParam(c, "user_id", "User")
	if err != nil {
		return err
	}

	res, err := h.uc.FindMatches(c.Context(), userID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewMatchesResponse(res))
}

func mapMatchUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucmatch.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
