package catalog

import (
	"context"
	"strings"

	"github.com/samiul132/anginar-bazar/internal/upstream"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Service reads the catalog through the upstream client. Listing pages
// fetch every page of a paginated resource up front so filtering and
// sorting can happen locally over the complete list.
type Service struct {
	api *upstream.Client
	log logrus.FieldLogger
}

func NewService(api *upstream.Client, log logrus.FieldLogger) *Service {
	return &Service{api: api, log: log}
}

func (s *Service) Home(ctx context.Context) (upstream.HomeData, error) {
	return s.api.Catalog.HomeData(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]upstream.Category, error) {
	return s.api.Catalog.Categories(ctx)
}

func (s *Service) Brands(ctx context.Context) ([]upstream.Brand, error) {
	return s.api.Catalog.Brands(ctx)
}

func (s *Service) AllProducts(ctx context.Context) (upstream.AllProductsData, error) {
	return s.api.Catalog.AllProducts(ctx)
}

// CategoryProducts fetches page 1 to learn last_page, then the
// remaining pages concurrently. Results are concatenated in request
// order, not completion order, and deduplicated by product id.
func (s *Service) CategoryProducts(ctx context.Context, slug string) (upstream.Category, []upstream.Product, error) {
	first, err := s.api.Catalog.CategoryProducts(ctx, slug, 1)
	if err != nil {
		return upstream.Category{}, nil, err
	}

	products := first.Products.Data
	lastPage := first.Products.LastPage

	if lastPage > 1 {
		pages := make([][]upstream.Product, lastPage-1)
		g, gctx := errgroup.WithContext(ctx)
		for page := 2; page <= lastPage; page++ {
			page := page
			g.Go(func() error {
				resp, err := s.api.Catalog.CategoryProducts(gctx, slug, page)
				if err != nil {
					return err
				}
				pages[page-2] = resp.Products.Data
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return upstream.Category{}, nil, err
		}
		for _, p := range pages {
			products = append(products, p...)
		}
	}

	return first.CatInfo, dedupe(products), nil
}

// BrandProducts mirrors CategoryProducts for brand listings.
func (s *Service) BrandProducts(ctx context.Context, slug string) (upstream.Brand, []upstream.Product, error) {
	first, err := s.api.Catalog.BrandProducts(ctx, slug, 1)
	if err != nil {
		return upstream.Brand{}, nil, err
	}

	products := first.Products.Data
	lastPage := first.Products.LastPage

	if lastPage > 1 {
		pages := make([][]upstream.Product, lastPage-1)
		g, gctx := errgroup.WithContext(ctx)
		for page := 2; page <= lastPage; page++ {
			page := page
			g.Go(func() error {
				resp, err := s.api.Catalog.BrandProducts(gctx, slug, page)
				if err != nil {
					return err
				}
				pages[page-2] = resp.Products.Data
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return upstream.Brand{}, nil, err
		}
		for _, p := range pages {
			products = append(products, p...)
		}
	}

	return first.BrandInfo, dedupe(products), nil
}

func (s *Service) ProductDetails(ctx context.Context, slug string) (upstream.Product, error) {
	return s.api.Catalog.ProductDetails(ctx, slug)
}

func (s *Service) RelatedProducts(ctx context.Context, productID int) ([]upstream.Product, error) {
	return s.api.Catalog.RelatedProducts(ctx, productID)
}

func (s *Service) PopularItems(ctx context.Context, page int) (upstream.ProductPage, error) {
	return s.api.Catalog.PopularItems(ctx, page)
}

// SpecialOffers lists every product currently carrying a promotional
// price.
func (s *Service) SpecialOffers(ctx context.Context) ([]upstream.Product, error) {
	all, err := s.api.Catalog.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	offers := make([]upstream.Product, 0)
	for _, p := range all.Products.Data {
		if p.PromotionalPrice.Valid && p.PromotionalPrice.Decimal.IsPositive() {
			offers = append(offers, p)
		}
	}
	return offers, nil
}

// Search runs a keyword search. A blank query short-circuits to an
// empty page without touching the network.
func (s *Service) Search(ctx context.Context, keywords string) (upstream.ProductPage, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return upstream.ProductPage{Data: []upstream.Product{}, CurrentPage: 1, LastPage: 1}, nil
	}
	return s.api.Catalog.Search(ctx, keywords)
}

// dedupe keeps the first occurrence of each product id, preserving
// order.
func dedupe(products []upstream.Product) []upstream.Product {
	seen := make(map[int]struct{}, len(products))
	out := products[:0]
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
