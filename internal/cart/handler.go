package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/shopspring/decimal"
)

// Handler exposes the cart over HTTP. All routes operate on the cart
// belonging to the caller's session cookie.
type Handler struct {
	manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{manager: m}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Patch("/api/v1/cart", h.updateQuantity)
	app.Delete("/api/v1/cart/:productID<int>", h.removeFromCart)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addRequest struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type updateRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	sid := session.SID(c)
	return c.JSON(h.view(c, sid))
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product_id"})
	}
	if payload.Quantity <= 0 {
		// the storefront always sends at least 1
		payload.Quantity = 1
	}

	sid := session.SID(c)
	h.manager.Add(c.Context(), sid, Item{
		ProductID: payload.ProductID,
		Name:      payload.Name,
		Image:     payload.Image,
		Slug:      payload.Slug,
		Price:     payload.Price,
	}, payload.Quantity)

	return c.Status(fiber.StatusOK).JSON(h.view(c, sid))
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product_id"})
	}

	sid := session.SID(c)
	h.manager.UpdateQuantity(c.Context(), sid, payload.ProductID, payload.Quantity)
	return c.JSON(h.view(c, sid))
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	sid := session.SID(c)
	h.manager.Remove(c.Context(), sid, productID)
	return c.JSON(h.view(c, sid))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	sid := session.SID(c)
	h.manager.Clear(c.Context(), sid)
	return c.JSON(h.view(c, sid))
}

func (h *Handler) view(c *fiber.Ctx, sid string) fiber.Map {
	items := h.manager.Items(c.Context(), sid)
	return fiber.Map{
		"items": items,
		"count": len(items),
		"total": total(items),
	}
}
