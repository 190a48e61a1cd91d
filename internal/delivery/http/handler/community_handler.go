package handler

import (
	"context"
	"strconv"

	"learnpath/internal/delivery/http/dto"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/domain/leaderboard"
	"learnpath/internal/mockapi"
	"learnpath/internal/pkg/response"
	"learnpath/internal/pkg/validation"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CommunityUsecase interface {
	Leaderboard(ctx context.Context, id uuid.UUID) ([]leaderboard.Entry, error)
	Notifications(ctx context.Context, id uuid.UUID) (usecase.NotificationList, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID, notificationID int) error
	Chat(ctx context.Context, id uuid.UUID, message string) (mockapi.ChatReply, error)
}

type CommunityHandler struct {
	uc       CommunityUsecase
	validate *validation.Validator
}

func NewCommunityHandler(uc CommunityUsecase, v *validation.Validator) *CommunityHandler {
	return &CommunityHandler{uc: uc, validate: v}
}

func (h *CommunityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/leaderboard", h.Leaderboard)
	r.Get("/notifications", h.Notifications)
	r.Post("/notifications/:id/read", h.MarkNotificationRead)
	r.Post("/chat", h.Chat)
}

func (h *CommunityHandler) Leaderboard(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	rows, err := h.uc.Leaderboard(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rows)
}

func (h *CommunityHandler) Notifications(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	list, err := h.uc.Notifications(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, list)
}

func (h *CommunityHandler) MarkNotificationRead(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	nid, err := strconv.Atoi(c.Params("id"))
	if err != nil || nid <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid notification id", nil, err)
	}

	if err := h.uc.MarkNotificationRead(c.Context(), id, nid); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"id": nid, "read": true})
}

func (h *CommunityHandler) Chat(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.ChatRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	reply, err := h.uc.Chat(c.Context(), id, req.Message)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, reply)
}
