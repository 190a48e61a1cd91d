package handler

import (
	"context"
	"strconv"
	"strings"

	"learnpath/internal/delivery/http/dto"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/domain/course"
	"learnpath/internal/pkg/response"
	"learnpath/internal/pkg/validation"
	"learnpath/internal/search"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CoursesUsecase interface {
	Catalog(ctx context.Context, id uuid.UUID, category course.Category) ([]course.Course, error)
	Search(ctx context.Context, id uuid.UUID, query string, seq uint64) (search.Result, error)
	Detail(ctx context.Context, id uuid.UUID, courseID string) (course.Detail, error)
	TopicContent(ctx context.Context, id uuid.UUID, courseID string, in usecase.TopicContentInput) (course.TopicContent, error)
}

type CourseHandler struct {
	uc       CoursesUsecase
	validate *validation.Validator
}

func NewCourseHandler(uc CoursesUsecase, v *validation.Validator) *CourseHandler {
	return &CourseHandler{uc: uc, validate: v}
}

// RegisterRoutes mounts the catalog routes. /search is registered before
// /:id so it is not taken for a course id.
func (h *CourseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("", h.Catalog)
	r.Get("/search", h.Search)
	r.Get("/:id", h.Detail)
	r.Post("/:id/topics/content", h.TopicContent)
}

func (h *CourseHandler) Catalog(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	category := course.Category(strings.ToLower(strings.TrimSpace(c.Query("category"))))

	items, err := h.uc.Catalog(c.Context(), id, category)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"category": category,
		"courses":  items,
	})
}

func (h *CourseHandler) Search(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}

	var seq uint64
	if raw := strings.TrimSpace(c.Query("seq")); raw != "" {
		seq, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid seq", nil, err)
		}
	}

	res, err := h.uc.Search(c.Context(), id, c.Query("q"), seq)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CourseHandler) Detail(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Detail(c.Context(), id, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}

func (h *CourseHandler) TopicContent(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.TopicContentRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	tc, err := h.uc.TopicContent(c.Context(), id, c.Params("id"), usecase.TopicContentInput{
		CourseTitle: req.CourseTitle,
		TopicTitle:  req.TopicTitle,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, tc)
}
