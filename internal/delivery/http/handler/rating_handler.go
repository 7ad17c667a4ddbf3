package handler

import (
	"context"
	"errors"

	"skill-exchange/internal/delivery/http/dto"
	"skill-exchange/internal/delivery/http/middleware"
	"skill-exchange/internal/domain/rating"
	"skill-exchange/internal/pkg/response"
	ucrating "skill-exchange/internal/usecase/rating"

	"github.com/gofiber/fiber/v3"
)

type RatingUsecase interface {
	Create(ctx context.Context, actorID int64, in ucrating.CreateInput) (rating.Rating, error)
}

type RatingHandler struct {
	uc   RatingUsecase
	auth fiber.Handler
}

func NewRatingHandler(uc RatingUsecase, auth fiber.Handler) *RatingHandler {
	return &RatingHandler{uc: uc, auth: auth}
}

func (h *RatingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/ratings", h.auth, h.CreateRating)
}

func (h *RatingHandler) CreateRating(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	var req dto.CreateRatingRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	out, err := h.uc.Create(c.Context(), actor, ucrating.CreateInput{
		RaterID: req.RaterID,
		RatedID: req.RatedID,
		ChatID:  req.ChatID,
		Value:   req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return mapRatingUsecaseError(err)
	}
	return response.Created(c, dto.NewRatingResponse(out))
}

func mapRatingUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucrating.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucrating.ErrChatNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Chat not found", nil, err)
	case errors.Is(err, ucrating.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Only chat participants can rate each other", nil, err)
	case errors.Is(err, ucrating.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Rating must be between 1 and 5", nil, err)
	case errors.Is(err, ucrating.ErrAlreadyRated):
		return middleware.NewAppError(fiber.StatusConflict, "You already rated this chat", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
