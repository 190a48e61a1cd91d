package handler

import (
	"context"

	"learnpath/internal/delivery/http/dto"
	"learnpath/internal/domain/quiz"
	"learnpath/internal/pkg/response"
	"learnpath/internal/pkg/validation"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type QuizUsecase interface {
	Get(ctx context.Context, id uuid.UUID, courseID string) (quiz.PublicQuiz, error)
	Generate(ctx context.Context, id uuid.UUID, courseID, topic string) (quiz.PublicQuiz, error)
	Submit(ctx context.Context, id uuid.UUID, courseID string, answers []int) (usecase.QuizSubmission, error)
	Attempts(ctx context.Context, id uuid.UUID, courseID string) ([]quiz.Attempt, error)
}

type QuizHandler struct {
	uc       QuizUsecase
	validate *validation.Validator
}

func NewQuizHandler(uc QuizUsecase, v *validation.Validator) *QuizHandler {
	return &QuizHandler{uc: uc, validate: v}
}

// RegisterRoutes mounts the quiz routes under a course group.
func (h *QuizHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id/quiz", h.Get)
	r.Post("/:id/quiz/generate", h.Generate)
	r.Post("/:id/quiz/submit", h.Submit)
	r.Get("/:id/quiz/attempts", h.Attempts)
}

func (h *QuizHandler) Get(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	q, err := h.uc.Get(c.Context(), id, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, q)
}

func (h *QuizHandler) Generate(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.GenerateQuizRequest
	if len(c.Body()) > 0 {
		if err := bind(c, h.validate, &req); err != nil {
			return err
		}
	}
	q, err := h.uc.Generate(c.Context(), id, c.Params("id"), req.Topic)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, q)
}

func (h *QuizHandler) Submit(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.SubmitQuizRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	sub, err := h.uc.Submit(c.Context(), id, c.Params("id"), req.Answers)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, sub)
}

func (h *QuizHandler) Attempts(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	items, err := h.uc.Attempts(c.Context(), id, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
