package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/samiul132/anginar-bazar/internal/upstream"
	"github.com/shopspring/decimal"
)

// Handler serves the catalog pages: home, category and brand listings,
// product details, shop, search, popular items and special offers.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/home", h.home)
	app.Get("/api/v1/categories", h.categories)
	app.Get("/api/v1/brands", h.brands)
	app.Get("/api/v1/shop", h.shop)
	app.Get("/api/v1/search", h.search)
	app.Get("/api/v1/popular-items", h.popularItems)
	app.Get("/api/v1/special-offer", h.specialOffers)
	app.Get("/api/v1/category/:slug", h.categoryProducts)
	app.Get("/api/v1/brand/:slug", h.brandProducts)
	app.Get("/api/v1/product/:slug", h.productDetails)
}

func (h *Handler) home(c *fiber.Ctx) error {
	home, err := h.service.Home(c.Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(home)
}

func (h *Handler) categories(c *fiber.Ctx) error {
	cats, err := h.service.Categories(c.Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(cats)
}

func (h *Handler) brands(c *fiber.Ctx) error {
	brands, err := h.service.Brands(c.Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(brands)
}

func (h *Handler) shop(c *fiber.Ctx) error {
	all, err := h.service.AllProducts(c.Context())
	if err != nil {
		return upstreamError(c, err)
	}
	products := Apply(all.Products.Data, filterFromQuery(c))
	minPrice, maxPrice := PriceBounds(all.Products.Data)
	return c.JSON(fiber.Map{
		"products":  products,
		"total":     len(products),
		"min_price": minPrice,
		"max_price": maxPrice,
	})
}

func (h *Handler) search(c *fiber.Ctx) error {
	page, err := h.service.Search(c.Context(), c.Query("keywords"))
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) popularItems(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	items, err := h.service.PopularItems(c.Context(), page)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) specialOffers(c *fiber.Ctx) error {
	offers, err := h.service.SpecialOffers(c.Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"products": offers, "total": len(offers)})
}

func (h *Handler) categoryProducts(c *fiber.Ctx) error {
	category, products, err := h.service.CategoryProducts(c.Context(), c.Params("slug"))
	if err != nil {
		return upstreamError(c, err)
	}
	filtered := Apply(products, filterFromQuery(c))
	minPrice, maxPrice := PriceBounds(products)
	return c.JSON(fiber.Map{
		"category":  category,
		"products":  filtered,
		"total":     len(filtered),
		"min_price": minPrice,
		"max_price": maxPrice,
	})
}

func (h *Handler) brandProducts(c *fiber.Ctx) error {
	brand, products, err := h.service.BrandProducts(c.Context(), c.Params("slug"))
	if err != nil {
		return upstreamError(c, err)
	}
	filtered := Apply(products, filterFromQuery(c))
	minPrice, maxPrice := PriceBounds(products)
	return c.JSON(fiber.Map{
		"brand":     brand,
		"products":  filtered,
		"total":     len(filtered),
		"min_price": minPrice,
		"max_price": maxPrice,
	})
}

func (h *Handler) productDetails(c *fiber.Ctx) error {
	product, err := h.service.ProductDetails(c.Context(), c.Params("slug"))
	if err != nil {
		return upstreamError(c, err)
	}

	// related products are best-effort; the detail page renders without them
	related, err := h.service.RelatedProducts(c.Context(), product.ID)
	if err != nil {
		related = []upstream.Product{}
	}

	return c.JSON(fiber.Map{
		"product": product,
		"related": related,
	})
}

// filterFromQuery parses the listing filters: comma-separated
// categories/brands ids, min_price/max_price, sort.
func filterFromQuery(c *fiber.Ctx) Filter {
	f := Filter{
		CategoryIDs: parseIDs(c.Query("categories")),
		BrandIDs:    parseIDs(c.Query("brands")),
		SortBy:      c.Query("sort", SortDefault),
	}
	if v := c.Query("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MinPrice = d
		}
	}
	if v := c.Query("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MaxPrice = d
		}
	}
	return f
}

func parseIDs(raw string) []int {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// upstreamError maps an upstream failure to the storefront response,
// keeping the service-provided message for the retry banner.
func upstreamError(c *fiber.Ctx, err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": apiErr.Message})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
}
