package upstream

import (
	"github.com/shopspring/decimal"
)

// Customer is the profile object returned by the service.
type Customer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Product mirrors the catalog product shape. Prices arrive as JSON
// strings or numbers depending on the endpoint; decimal accepts both.
type Product struct {
	ID               int                 `json:"id"`
	ProductName      string              `json:"product_name"`
	Slug             string              `json:"slug"`
	Image            string              `json:"image"`
	SalePrice        decimal.Decimal     `json:"sale_price"`
	PromotionalPrice decimal.NullDecimal `json:"promotional_price"`
	BrandID          int                 `json:"brand_id"`
	CategoryID       int                 `json:"category_id"`
	Categories       []Category          `json:"categories,omitempty"`
	Stock            int                 `json:"stock"`
	Unit             string              `json:"unit,omitempty"`
	CreatedAt        string              `json:"created_at,omitempty"`
}

// EffectivePrice is the price shown and charged for the product: the
// promotional price when one is set and positive, else the sale price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.PromotionalPrice.Valid && p.PromotionalPrice.Decimal.IsPositive() {
		return p.PromotionalPrice.Decimal
	}
	return p.SalePrice
}

type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

type Brand struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

// Address is server-owned; IsDefault is an integer literal (0/1), never
// a boolean. The upstream silently drops boolean values for this field.
type Address struct {
	ID            int    `json:"id"`
	StreetAddress string `json:"street_address"`
	DivisionID    int    `json:"division_id"`
	DistrictID    int    `json:"district_id"`
	UpazilaID     int    `json:"upazila_id"`
	IsDefault     int    `json:"is_default"`
}

type Order struct {
	ID             int             `json:"id"`
	Status         string          `json:"status"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	PayableAmount  decimal.Decimal `json:"payable_amount"`
	PaymentMethod  string          `json:"payment_method"`
	OrderNote      string          `json:"order_note,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
	Items          []OrderLine     `json:"items,omitempty"`
	Address        *Address        `json:"address,omitempty"`
}

type OrderLine struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// ProductPage is the paginated sub-resource convention:
// {data, current_page, last_page, total}.
type ProductPage struct {
	Data        []Product `json:"data"`
	CurrentPage int       `json:"current_page"`
	LastPage    int       `json:"last_page"`
	Total       int       `json:"total"`
}

type OrderPage struct {
	Data        []Order `json:"data"`
	CurrentPage int     `json:"current_page"`
	LastPage    int     `json:"last_page"`
	Total       int     `json:"total"`
}

type Slider struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
}

// HomeData is the home-page aggregate.
type HomeData struct {
	Sliders       []Slider   `json:"sliders"`
	Categories    []Category `json:"categories"`
	PopularItems  []Product  `json:"popular_items"`
	SpecialOffers []Product  `json:"special_offers"`
}
