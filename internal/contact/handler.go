package contact

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samiul132/anginar-bazar/internal/upstream"
)

var validate = validator.New()

// Handler forwards contact-us submissions upstream after local
// required-field checks.
type Handler struct {
	api *upstream.Client
}

func NewHandler(api *upstream.Client) *Handler {
	return &Handler{api: api}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/contact", h.send)
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,min=10"`
	Email   string `json:"email" validate:"omitempty,email"`
	Message string `json:"message" validate:"required"`
}

func (h *Handler) send(c *fiber.Ctx) error {
	payload := new(contactRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	env, err := h.api.Contact.Send(c.Context(), upstream.ContactForm{
		Name:    payload.Name,
		Phone:   payload.Phone,
		Email:   payload.Email,
		Message: payload.Message,
	})
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": apiErr.Message})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}

	message := env.Message
	if message == "" {
		message = "message sent"
	}
	return c.JSON(fiber.Map{"success": true, "message": message})
}
