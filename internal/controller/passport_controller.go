package controller

import (
	"idea-passport-be/internal/pkg/serverutils"
	"idea-passport-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPassportController interface {
	RegisterRoutes(r fiber.Router)
	Fields(ctx *fiber.Ctx) error
}

type passportController struct {
	passportService service.IPassportService
}

func NewPassportController(passportService service.IPassportService) IPassportController {
	return &passportController{
		passportService: passportService,
	}
}

func (c *passportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/passport/v1")
	h.Get(":sessionId/fields", c.Fields)
}

func (c *passportController) Fields(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.passportService.Fields(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Passport fields", res))
}
