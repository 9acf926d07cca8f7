package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, dto.ErrNotNumber):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidID):
		status, code = fiber.StatusBadRequest, "INVALID_ID"
	case errors.Is(err, domain.ErrDuplicateCode):
		status, code = fiber.StatusBadRequest, "DUPLICATE_CODE"
	case errors.Is(err, domain.ErrNothingDeleted):
		status, code = fiber.StatusBadRequest, "NOTHING_DELETED"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrPageOutOfRange):
		status, code = fiber.StatusNotFound, "PAGE_OUT_OF_RANGE"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno", Detail: err.Error()})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// bodyError respuesta para cuerpos que no se pudieron decodificar.
func bodyError(c *fiber.Ctx, err error) error {
	if errors.Is(err, dto.ErrNotNumber) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: dto.ErrNotNumber.Error()})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
