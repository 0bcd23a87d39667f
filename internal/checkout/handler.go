package checkout

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/samiul132/anginar-bazar/internal/upstream"
)

// Handler exposes the checkout summary and order submission.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/checkout/summary", h.summary)
	app.Post("/api/v1/checkout", h.placeOrder)
}

func (h *Handler) summary(c *fiber.Ctx) error {
	deliveryType := c.Query("delivery", DeliveryStandard)
	totals := h.service.Summary(c.Context(), session.SID(c), deliveryType)
	return c.JSON(totals)
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	payload := new(PlaceOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	result, err := h.service.PlaceOrder(c.Context(), session.SID(c), *payload)
	if err != nil {
		var apiErr *upstream.APIError
		var invalid validator.ValidationErrors
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		case errors.Is(err, ErrNoAddress):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "please add a delivery address"})
		case errors.As(err, &invalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.As(err, &apiErr):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": apiErr.Message})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}
