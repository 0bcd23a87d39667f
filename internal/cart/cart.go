package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one cart line. Name, image and slug are display metadata
// snapshotted when the product is first added; they are not re-synced
// with later catalog changes. ProductID is unique within a cart.
type Item struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// total folds price*quantity over all lines.
func total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

func findLine(items []Item, productID int) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
