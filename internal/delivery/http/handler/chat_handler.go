package handler

import (
	"context"
	"errors"

	"skill-exchange/internal/delivery/http/dto"
	"skill-exchange/internal/delivery/http/middleware"
	"skill-exchange/internal/domain/chat"
	"skill-exchange/internal/pkg/response"
	ucchat "skill-exchange/internal/usecase/chat"

	"github.com/gofiber/fiber/v3"
)

type ChatUsecase interface {
	ListForUser(ctx context.Context, userID int64) ([]chat.Summary, error)
	Open(ctx context.Context, actorID, user1ID, user2ID int64) (chat.Chat, bool, error)
	Messages(ctx context.Context, actorID, chatID int64) ([]chat.Message, error)
	Send(ctx context.Context, actorID, chatID, senderID int64, content string) (chat.Message, error)
	MarkRead(ctx context.Context, actorID, chatID, readerID int64) (int64, error)
	Delete(ctx context.Context, actorID, chatID int64) error
}

type ChatHandler struct {
	uc   ChatUsecase
	auth fiber.Handler
}

func NewChatHandler(uc ChatUsecase, auth fiber.Handler) *ChatHandler {
	return &ChatHandler{uc: uc, auth: auth}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/chats", h.auth)
	grp.Get("/user/:user_id", h.ListChats)
	grp.Post("/", h.OpenChat)
	grp.Get("/:chat_id/messages", h.ListMessages)
	grp.Post("/:chat_id/messages", h.SendMessage)
	grp.Put("/:chat_id/messages/read", h.MarkRead)
	grp.Delete("/:chat_id", h.DeleteChat)
}

func (h *ChatHandler) ListChats(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	userID, err := idParam(c, "user_id", "User")
	if err != nil {
		return err
	}
	if actor != userID {
		return middleware.NewAppError(fiber.StatusForbidden, "You can only list your own chats", nil, nil)
	}

	items, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatSummaryResponses(items))
}

// OpenChat answers 201 for a new chat and 200 when the pair already had one.
func (h *ChatHandler) OpenChat(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	var req dto.CreateChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	ch, created, err := h.uc.Open(c.Context(), actor, req.User1ID, req.User2ID)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	if created {
		return response.Created(c, dto.NewChatResponse(ch))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatResponse(ch))
}

func (h *ChatHandler) ListMessages(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	chatID, err := idParam(c, "chat_id", "Chat")
	if err != nil {
		return err
	}

	items, err := h.uc.Messages(c.Context(), actor, chatID)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageResponses(items))
}

func (h *ChatHandler) SendMessage(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	chatID, err := idParam(c, "chat_id", "Chat")
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	m, err := h.uc.Send(c.Context(), actor, chatID, req.SenderID, req.Content)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Created(c, dto.NewMessageResponse(m))
}

func (h *ChatHandler) MarkRead(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	chatID, err := idParam(c, "chat_id", "Chat")
	if err != nil {
		return err
	}

	var req dto.MarkReadRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	n, err := h.uc.MarkRead(c.Context(), actor, chatID, req.UserID)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"updated": n})
}

func (h *ChatHandler) DeleteChat(c fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	chatID, err := idParam(c, "chat_id", "Chat")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), actor, chatID); err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Chat deleted", nil)
}

func mapChatUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucchat.ErrChatNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Chat not found", nil, err)
	case errors.Is(err, ucchat.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucchat.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a participant of this chat", nil, err)
	case errors.Is(err, ucchat.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
