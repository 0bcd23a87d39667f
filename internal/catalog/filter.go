package catalog

import (
	"sort"
	"time"

	"github.com/samiul132/anginar-bazar/internal/upstream"
	"github.com/shopspring/decimal"
)

// Sort orders accepted by Filter.SortBy.
const (
	SortDefault   = "default"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortNewest    = "newest"
)

// Filter narrows and orders an already-fetched product list. Zero
// values mean "no constraint". The price range is inclusive and
// applies to the effective price (promotional when set, else sale).
type Filter struct {
	CategoryIDs []int
	BrandIDs    []int
	MinPrice    decimal.Decimal
	MaxPrice    decimal.Decimal
	SortBy      string
}

// Apply filters and sorts a copy of products; the input is untouched.
func Apply(products []upstream.Product, f Filter) []upstream.Product {
	out := make([]upstream.Product, 0, len(products))

	for _, p := range products {
		if len(f.CategoryIDs) > 0 && !inCategory(p, f.CategoryIDs) {
			continue
		}
		if len(f.BrandIDs) > 0 && !containsInt(f.BrandIDs, p.BrandID) {
			continue
		}
		price := p.EffectivePrice()
		if price.LessThan(f.MinPrice) {
			continue
		}
		if f.MaxPrice.IsPositive() && price.GreaterThan(f.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	switch f.SortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice().LessThan(out[j].EffectivePrice())
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice().GreaterThan(out[j].EffectivePrice())
		})
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ProductName < out[j].ProductName
		})
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ProductName > out[j].ProductName
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return createdAt(out[i]).After(createdAt(out[j]))
		})
	}

	return out
}

// PriceBounds returns the floor of the lowest and the ceiling of the
// highest effective price, for the range slider. Empty input yields
// (0, 0).
func PriceBounds(products []upstream.Product) (int, int) {
	if len(products) == 0 {
		return 0, 0
	}
	min := products[0].EffectivePrice()
	max := min
	for _, p := range products[1:] {
		price := p.EffectivePrice()
		if price.LessThan(min) {
			min = price
		}
		if price.GreaterThan(max) {
			max = price
		}
	}
	return int(min.Floor().IntPart()), int(max.Ceil().IntPart())
}

// inCategory checks the nested categories list when present, falling
// back to the flat category_id.
func inCategory(p upstream.Product, ids []int) bool {
	if len(p.Categories) > 0 {
		for _, c := range p.Categories {
			if containsInt(ids, c.ID) {
				return true
			}
		}
		return false
	}
	return p.CategoryID != 0 && containsInt(ids, p.CategoryID)
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func createdAt(p upstream.Product) time.Time {
	t, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
