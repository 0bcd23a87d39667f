package account

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/samiul132/anginar-bazar/internal/upstream"
)

var validate = validator.New()

// Handler exposes authentication, profile and order-history routes.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/auth/request-otp", h.requestOTP)
	app.Post("/api/v1/auth/verify-otp", h.verifyOTP)
	app.Post("/api/v1/auth/init-profile", h.initProfile)
	app.Post("/api/v1/auth/logout", h.logout)
	app.Get("/api/v1/profile", h.profile)
	app.Delete("/api/v1/account", h.deleteAccount)
	app.Get("/api/v1/my-orders", h.myOrders)
	app.Get("/api/v1/order/:id<int>", h.orderDetails)
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

type verifyRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type initProfileRequest struct {
	Name          string `json:"name" validate:"required"`
	StreetAddress string `json:"street_address" validate:"required"`
	DivisionID    int    `json:"division_id" validate:"required"`
	DistrictID    int    `json:"district_id" validate:"required"`
	UpazilaID     int    `json:"upazila_id" validate:"required"`
}

func (h *Handler) requestOTP(c *fiber.Ctx) error {
	payload := new(phoneRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.RequestOTP(c.Context(), payload.Phone); err != nil {
		if errors.Is(err, ErrInvalidPhone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid phone number"})
		}
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "OTP sent"})
}

func (h *Handler) verifyOTP(c *fiber.Ctx) error {
	payload := new(verifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	customer, requiresProfile, err := h.service.VerifyOTP(c.Context(), session.SID(c), payload.Phone, payload.OTP)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPhone):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid phone number"})
		case errors.Is(err, ErrOTPRejected):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "OTP verification failed"})
		default:
			return upstreamError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"user":             customer,
		"requires_profile": requiresProfile,
	})
}

func (h *Handler) initProfile(c *fiber.Ctx) error {
	payload := new(initProfileRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	customer, err := h.service.InitProfile(c.Context(), session.SID(c), upstream.InitProfileRequest{
		Name:          payload.Name,
		StreetAddress: payload.StreetAddress,
		DivisionID:    payload.DivisionID,
		DistrictID:    payload.DistrictID,
		UpazilaID:     payload.UpazilaID,
	})
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": customer})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.Context(), session.SID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) profile(c *fiber.Ctx) error {
	customer, err := h.service.Profile(c.Context(), session.SID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(customer)
}

func (h *Handler) deleteAccount(c *fiber.Ctx) error {
	if err := h.service.DeleteAccount(c.Context(), session.SID(c)); err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "account deleted"})
}

func (h *Handler) myOrders(c *fiber.Ctx) error {
	result, err := h.service.MyOrders(c.Context(), session.SID(c), c.QueryInt("page", 1))
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) orderDetails(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}
	guest := c.QueryBool("guest", false)

	order, message, err := h.service.OrderDetails(c.Context(), session.SID(c), orderID, guest)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": order, "message": message})
}

func upstreamError(c *fiber.Ctx, err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": apiErr.Message})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
}
