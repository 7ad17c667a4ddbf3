package handler

import (
	"context"
	"errors"

	"skill-exchange/internal/delivery/http/dto"
	"skill-exchange/internal/delivery/http/middleware"
	"skill-exchange/internal/pkg/response"
	ucauth "skill-exchange/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthUsecase interface {
	Signup(ctx context.Context, in ucauth.SignupInput) (ucauth.Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (ucauth.Session, error)
}

type AuthHandler struct {
	uc AuthUsecase
}

func NewAuthHandler(uc AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}

	sess, err := h.uc.Signup(c.Context(), ucauth.SignupInput{
		Name:     name,
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.ToDomain(),
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Created(c, dto.SignupResponse{
		User:        dto.NewUserResponse(sess.User),
		AccessToken: sess.AccessToken,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	sess, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.LoginResponse{
		UserID:      sess.User.ID,
		Name:        sess.User.Name,
		AccessToken: sess.AccessToken,
	})
}

func mapAuthUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Name, email and a password of at least 8 characters are required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
