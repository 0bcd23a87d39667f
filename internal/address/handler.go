package address

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/samiul132/anginar-bazar/internal/upstream"
)

var validate = validator.New()

// Handler exposes the address book routes.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/address", h.list)
	app.Post("/api/v1/address", h.add)
	app.Put("/api/v1/address/:id<int>", h.update)
	app.Delete("/api/v1/address/:id<int>", h.remove)
}

// addressRequest carries the create/update fields. IsDefault is an
// int so the upstream receives 0/1, never true/false.
type addressRequest struct {
	StreetAddress string `json:"street_address" validate:"required"`
	DivisionID    int    `json:"division_id" validate:"required"`
	DistrictID    int    `json:"district_id" validate:"required"`
	UpazilaID     int    `json:"upazila_id" validate:"required"`
	IsDefault     int    `json:"is_default" validate:"oneof=0 1"`
}

func (r addressRequest) payload() upstream.AddressPayload {
	return upstream.AddressPayload{
		StreetAddress: r.StreetAddress,
		DivisionID:    r.DivisionID,
		DistrictID:    r.DistrictID,
		UpazilaID:     r.UpazilaID,
		IsDefault:     r.IsDefault,
	}
}

func (h *Handler) list(c *fiber.Ctx) error {
	addrs, err := h.service.List(c.Context(), session.SID(c))
	if err != nil {
		return h.mapError(c, err)
	}

	var defaultID int
	if d := Default(addrs); d != nil {
		defaultID = d.ID
	}
	return c.JSON(fiber.Map{
		"addresses":  addrs,
		"default_id": defaultID,
	})
}

func (h *Handler) add(c *fiber.Ctx) error {
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.Add(c.Context(), session.SID(c), payload.payload()); err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

func (h *Handler) update(c *fiber.Ctx) error {
	addressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.Update(c.Context(), session.SID(c), addressID, payload.payload()); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	addressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}

	if err := h.service.Delete(c.Context(), session.SID(c), addressID); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotAuthenticated) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": apiErr.Message})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
}
