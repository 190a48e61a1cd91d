package handler

import (
	"context"

	"learnpath/internal/pkg/response"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type DashboardUsecase interface {
	Overview(ctx context.Context, id uuid.UUID) (usecase.DashboardView, error)
	Home(ctx context.Context, id uuid.UUID) (usecase.HomeView, error)
	ContentLibrary(ctx context.Context, id uuid.UUID) (usecase.ContentLibraryView, error)
}

type DashboardHandler struct {
	uc DashboardUsecase
}

func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("", h.Overview)
	r.Get("/home", h.Home)
	r.Get("/content-library", h.ContentLibrary)
}

func (h *DashboardHandler) Overview(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	v, err := h.uc.Overview(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, v)
}

func (h *DashboardHandler) Home(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	v, err := h.uc.Home(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, v)
}

func (h *DashboardHandler) ContentLibrary(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	v, err := h.uc.ContentLibrary(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, v)
}
