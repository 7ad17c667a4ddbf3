package handler

import (
	"context"
	"errors"

	"skill-exchange/internal/delivery/http/dto"
	"skill-exchange/internal/delivery/http/middleware"
	"skill-exchange/internal/domain/user"
	"skill-exchange/internal/pkg/response"
	ucprofile "skill-exchange/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type ProfileUsecase interface {
	Get(ctx context.Context, userID int64) (user.User, error)
	Update(ctx context.Context, actorID, userID int64, in user.ProfileUpdate) (user.User, error)
}

type ProfileHandler struct {
	uc   ProfileUsecase
	auth fiber.Handler
}

func NewProfileHandler(uc ProfileUsecase, auth fiber.Handler) *ProfileHandler {
	return &ProfileHandler{uc: uc, auth: auth}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/profile")
	grp.Get("/:user_id", h.GetProfile)
	grp.Put("/:user_id", h.auth, h.UpdateProfile)
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	userID, err := idParam(c, "user_id", "User")
	if err != nil {
		return err
	}

	u, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	userID, err := idParam(c, "user_id", "User")
	if err != nil {
		return err
	}

	var req dto.ProfileUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	u, err := h.uc.Update(c.Context(), actor, userID, req.ToDomain())
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func mapProfileUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucprofile.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucprofile.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You can only edit your own profile", nil, err)
	case errors.Is(err, ucprofile.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Name must not be empty", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
