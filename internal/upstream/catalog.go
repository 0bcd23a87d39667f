package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// CatalogAPI wraps the read-only catalog endpoints.
type CatalogAPI struct {
	c *Client
}

func (a *CatalogAPI) HomeData(ctx context.Context) (HomeData, error) {
	env, err := a.c.request(ctx, http.MethodGet, epHomeData, "", nil)
	if err != nil {
		return HomeData{}, err
	}
	var home HomeData
	if err := env.decode(&home); err != nil {
		return HomeData{}, err
	}
	return home, nil
}

// AllProductsData is the get_all_products payload; max_price feeds the
// price-range slider bounds.
type AllProductsData struct {
	Products ProductPage         `json:"products"`
	MaxPrice decimal.NullDecimal `json:"max_price"`
}

func (a *CatalogAPI) AllProducts(ctx context.Context) (AllProductsData, error) {
	env, err := a.c.request(ctx, http.MethodGet, epAllProducts, "", nil)
	if err != nil {
		return AllProductsData{}, err
	}
	var data AllProductsData
	if err := env.decode(&data); err != nil {
		return AllProductsData{}, err
	}
	return data, nil
}

func (a *CatalogAPI) Categories(ctx context.Context) ([]Category, error) {
	env, err := a.c.request(ctx, http.MethodGet, epCategories, "", nil)
	if err != nil {
		return nil, err
	}
	var cats []Category
	if err := env.decode(&cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (a *CatalogAPI) Brands(ctx context.Context) ([]Brand, error) {
	env, err := a.c.request(ctx, http.MethodGet, epBrands, "", nil)
	if err != nil {
		return nil, err
	}
	var brands []Brand
	if err := env.decode(&brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// CategoryProductsData is the get-products-by-category payload.
type CategoryProductsData struct {
	CatInfo  Category    `json:"catInfo"`
	Products ProductPage `json:"products"`
}

func (a *CatalogAPI) CategoryProducts(ctx context.Context, slug string, page int) (CategoryProductsData, error) {
	endpoint := "/get-products-by-category/" + url.PathEscape(slug)
	if page > 1 {
		endpoint = fmt.Sprintf("%s?page=%d", endpoint, page)
	}
	env, err := a.c.request(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return CategoryProductsData{}, err
	}
	var data CategoryProductsData
	if err := env.decode(&data); err != nil {
		return CategoryProductsData{}, err
	}
	return data, nil
}

// BrandProductsData is the get-products-by-brand payload.
type BrandProductsData struct {
	BrandInfo Brand       `json:"brandInfo"`
	Products  ProductPage `json:"products"`
}

func (a *CatalogAPI) BrandProducts(ctx context.Context, slug string, page int) (BrandProductsData, error) {
	endpoint := "/get-products-by-brand/" + url.PathEscape(slug)
	if page > 1 {
		endpoint = fmt.Sprintf("%s?page=%d", endpoint, page)
	}
	env, err := a.c.request(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return BrandProductsData{}, err
	}
	var data BrandProductsData
	if err := env.decode(&data); err != nil {
		return BrandProductsData{}, err
	}
	return data, nil
}

// ProductDetailsData is the get-product-details payload.
type ProductDetailsData struct {
	Product Product `json:"product"`
}

func (a *CatalogAPI) ProductDetails(ctx context.Context, slug string) (Product, error) {
	env, err := a.c.request(ctx, http.MethodGet, "/get-product-details/"+url.PathEscape(slug), "", nil)
	if err != nil {
		return Product{}, err
	}
	var data ProductDetailsData
	if err := env.decode(&data); err != nil {
		return Product{}, err
	}
	return data.Product, nil
}

func (a *CatalogAPI) RelatedProducts(ctx context.Context, productID int) ([]Product, error) {
	env, err := a.c.request(ctx, http.MethodGet, fmt.Sprintf("/get-related-products/%d", productID), "", nil)
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := env.decode(&products); err != nil {
		return nil, err
	}
	return products, nil
}

func (a *CatalogAPI) PopularItems(ctx context.Context, page int) (ProductPage, error) {
	endpoint := epPopularItems
	if page > 1 {
		endpoint = fmt.Sprintf("%s?page=%d", endpoint, page)
	}
	env, err := a.c.request(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return ProductPage{}, err
	}
	var pp ProductPage
	if err := env.decode(&pp); err != nil {
		return ProductPage{}, err
	}
	return pp, nil
}

// SearchData is the keyword search payload.
type SearchData struct {
	Products ProductPage `json:"products"`
}

func (a *CatalogAPI) Search(ctx context.Context, keywords string) (ProductPage, error) {
	endpoint := epSearch + "?keywords=" + url.QueryEscape(keywords)
	env, err := a.c.request(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return ProductPage{}, err
	}
	var data SearchData
	if err := env.decode(&data); err != nil {
		return ProductPage{}, err
	}
	return data.Products, nil
}
