package handler

import (
	"learnpath/internal/delivery/http/dto"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/pkg/response"
	"learnpath/internal/pkg/validation"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc       usecase.AuthUsecase
	validate *validation.Validator
}

func NewAuthHandler(uc usecase.AuthUsecase, v *validation.Validator) *AuthHandler {
	return &AuthHandler{uc: uc, validate: v}
}

// RegisterRoutes mounts the auth routes. optional resolves a presented
// token without requiring one; required rejects requests without one.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, optional, required fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/login", optional, h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", required, h.Logout)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	res, err := h.uc.Login(c.Context(), middleware.SessionID(c), req.Email, req.Password)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewLoginResponse(res))
}

// Refresh takes the refresh token from the Authorization header or, failing
// that, the request body.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		var req dto.RefreshRequest
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&req); err != nil {
				return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
			}
		}
		tok = req.RefreshToken
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, tokens)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	id, err := requireSession(c)
	if err != nil {
		return err
	}

	v, err := h.uc.Logout(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionData(v))
}
