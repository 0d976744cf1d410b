package http

import (
	"errors"

	"cv-builder/internal/document"
	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/internal/section"
	"cv-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HTTPStatus maps an error returned by the use cases to a response status.
func HTTPStatus(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, section.ErrEntryNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrPremiumRequired):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrStepIncomplete):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrUnknownTemplate),
		errors.Is(err, document.ErrUnknownSection),
		errors.Is(err, document.ErrSectionData),
		errors.Is(err, model.ErrUnknownField),
		errors.Is(err, model.ErrFieldType),
		errors.Is(err, section.ErrNotAList),
		errors.Is(err, section.ErrItemIndex),
		errors.Is(err, usecase.ErrAcceptMode),
		errors.Is(err, usecase.ErrStepRange):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrExportFailed),
		errors.Is(err, domain.ErrPersistence):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler is the app-wide catch-all: it writes {"error": msg} and hides
// the text of unexpected failures.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := HTTPStatus(err)
		msg := err.Error()
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
			if status == fiber.StatusInternalServerError {
				msg = "internal server error"
			}
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
}

func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}
