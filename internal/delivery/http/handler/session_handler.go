package handler

import (
	"context"

	"learnpath/internal/delivery/http/dto"
	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/session"
	"learnpath/internal/domain/user"
	"learnpath/internal/pkg/response"
	"learnpath/internal/pkg/validation"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SessionUsecase interface {
	State(ctx context.Context, id uuid.UUID) (usecase.SessionView, error)
	SetView(ctx context.Context, id uuid.UUID, v session.View) (usecase.SessionView, error)
	SetPlan(ctx context.Context, id uuid.UUID, p plan.LearningPlan) (usecase.SessionView, error)
	CompleteOnboarding(ctx context.Context, id uuid.UUID, data user.OnboardingData) (usecase.SessionView, error)
	CompleteUserInfo(ctx context.Context, id uuid.UUID, data user.UserInfoData) (usecase.SessionView, error)
}

type SessionHandler struct {
	uc       SessionUsecase
	validate *validation.Validator
}

func NewSessionHandler(uc SessionUsecase, v *validation.Validator) *SessionHandler {
	return &SessionHandler{uc: uc, validate: v}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("", h.Get)
	r.Put("/view", h.SetView)
	r.Put("/plan", h.SetPlan)
	r.Post("/onboarding", h.CompleteOnboarding)
	r.Post("/user-info", h.CompleteUserInfo)
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	v, err := h.uc.State(c.Context(), id)
	return h.respond(c, v, err)
}

func (h *SessionHandler) SetView(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.SetViewRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	v, err := h.uc.SetView(c.Context(), id, req.ToView())
	return h.respond(c, v, err)
}

func (h *SessionHandler) SetPlan(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.SetPlanRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	v, err := h.uc.SetPlan(c.Context(), id, req.Plan)
	return h.respond(c, v, err)
}

func (h *SessionHandler) CompleteOnboarding(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.OnboardingRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	v, err := h.uc.CompleteOnboarding(c.Context(), id, req.ToDomain())
	return h.respond(c, v, err)
}

func (h *SessionHandler) CompleteUserInfo(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.UserInfoRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	v, err := h.uc.CompleteUserInfo(c.Context(), id, req.ToDomain())
	return h.respond(c, v, err)
}

func (h *SessionHandler) respond(c fiber.Ctx, v usecase.SessionView, err error) error {
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionData(v))
}
