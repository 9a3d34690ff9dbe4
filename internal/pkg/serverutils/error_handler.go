package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrNotFound is returned by services when a record does not exist.
// Controllers and the recovery middleware map it to 404.
var ErrNotFound = errors.New("resource not found")

// ErrorHandlerMiddleware recovers from panics and normalizes errors escaping
// controllers into the standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				_ = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(500, "Internal server error"))
			}
		}()

		err := ctx.Next()
		if err == nil {
			return nil
		}

		var verr *ValidationError
		var ferr *fiber.Error
		switch {
		case errors.As(err, &verr):
			return ctx.Status(fiber.StatusUnprocessableEntity).
				JSON(ErrorResponse(422, verr.Error()))
		case errors.Is(err, ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).
				JSON(ErrorResponse(404, err.Error()))
		case errors.As(err, &ferr):
			return ctx.Status(ferr.Code).JSON(ErrorResponse(ferr.Code, ferr.Message))
		default:
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(500, err.Error()))
		}
	}
}
