package response

import (
	"errors"

	apperrors "leasefee/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

// ValidationError reports field level failures keyed by JSON path.
func ValidationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": fields,
	})
}

// DomainError writes err with the status its code maps to. Errors without a
// domain code are reported as internal without leaking their text.
func DomainError(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		return ServerError(c, "internal server error")
	}
	return c.Status(statusFor(de)).JSON(fiber.Map{
		"error": de.Error(),
		"code":  de.Code,
	})
}

func statusFor(de *apperrors.DomainError) int {
	switch {
	case errors.Is(de, apperrors.ErrInvalidFeeInput), errors.Is(de, apperrors.ErrEmptyBatch):
		return fiber.StatusBadRequest
	case errors.Is(de, apperrors.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(de, apperrors.ErrInvalidCredentials), errors.Is(de, apperrors.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(de, apperrors.ErrPaymentFailed):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
