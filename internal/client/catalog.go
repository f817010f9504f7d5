package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Uried/Nexora/internal/model"
)

// ListProducts returns a catalog page. page and limit are passed through when
// positive; the server's defaults apply otherwise.
func (c *Client) ListProducts(ctx context.Context, page, limit int) ([]model.Product, error) {
	u := c.base + "/api/products"
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return c.fetchProducts(ctx, u)
}

// ListProductsByCategory returns the products of one category.
func (c *Client) ListProductsByCategory(ctx context.Context, categoryID string) ([]model.Product, error) {
	return c.fetchProducts(ctx, c.base+"/api/products/category/"+url.PathEscape(categoryID))
}

func (c *Client) fetchProducts(ctx context.Context, u string) ([]model.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(resp.StatusCode) {
		return nil, rejection(resp)
	}
	var wire struct {
		Products []wireProduct `json:"products"`
	}
	if err := decode(resp, &wire); err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(wire.Products))
	for i := range wire.Products {
		out = append(out, *wire.Products[i].toModel())
	}
	return out, nil
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, c.base+"/api/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(resp.StatusCode) {
		return nil, rejection(resp)
	}
	var wire wireProduct
	if err := decode(resp, &wire); err != nil {
		return nil, err
	}
	return wire.toModel(), nil
}

// ListCategories returns all catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	resp, err := c.do(ctx, http.MethodGet, c.base+"/api/categories", nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(resp.StatusCode) {
		return nil, rejection(resp)
	}
	var wire struct {
		Categories []wireCategory `json:"categories"`
	}
	if err := decode(resp, &wire); err != nil {
		return nil, err
	}
	out := make([]model.Category, 0, len(wire.Categories))
	for _, c := range wire.Categories {
		out = append(out, c.toModel())
	}
	return out, nil
}
