package handler

import (
	"context"
	"errors"

	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/mockapi"
	"learnpath/internal/pkg/response"
	"learnpath/internal/pkg/validation"
	"learnpath/internal/search"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapUsecaseError translates usecase and backend errors into AppErrors.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, response.MessageValidationFailed, verr.Fields, err)
	case errors.Is(err, mockapi.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageInvalidCredentials, nil, err)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageSessionExpired, nil, err)
	case errors.Is(err, usecase.ErrLoginRequired):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageLoginRequired, nil, err)
	case errors.Is(err, usecase.ErrIntakeRequired):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageIntakeRequired, nil, err)
	case errors.Is(err, search.ErrStale):
		return middleware.NewAppError(fiber.StatusConflict, response.MessageSearchSuperseded, nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidCategory):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid course category", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrEmptyMessage):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, mockapi.ErrNotificationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Notification not found", nil, err)
	case errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusGatewayTimeout, "", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

// bind decodes the JSON body into out and validates it.
func bind(c fiber.Ctx, v *validation.Validator, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if v == nil {
		return nil
	}
	if err := v.Struct(out); err != nil {
		return mapUsecaseError(err)
	}
	return nil
}

func requireSession(c fiber.Ctx) (uuid.UUID, error) {
	id := middleware.SessionID(c)
	if id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}
