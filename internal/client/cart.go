package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/Uried/Nexora/internal/errs"
	"github.com/Uried/Nexora/internal/model"
)

// FetchCart retrieves the full cart with populated products for the current
// device identity. It returns nil when the cart could not be loaded: missing
// identity, transport failure or a non-2xx response. A present snapshot with
// zero items means the cart exists and is empty.
func (c *Client) FetchCart(ctx context.Context) *model.CartSnapshot {
	cartID, err := c.cartID()
	if err != nil {
		return nil
	}
	u := fmt.Sprintf("%s/api/cart/full/%s?populate=true", c.base, url.PathEscape(cartID))
	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.logger.Debug("cart fetch failed", zap.Error(err))
		return nil
	}
	if !is2xx(resp.StatusCode) {
		drain(resp)
		c.logger.Debug("cart fetch rejected", zap.Int("status", resp.StatusCode))
		return nil
	}
	var wire wireCartResponse
	if err := decode(resp, &wire); err != nil {
		c.logger.Debug("cart fetch decode failed", zap.Error(err))
		return nil
	}
	return wire.toModel()
}

// AddItem requests creation or increment of a cart line. priceAtAdd <= 0 means
// no price snapshot is sent and the server captures the current price.
func (c *Client) AddItem(ctx context.Context, productID string, quantity int, priceAtAdd int64) error {
	if productID == "" {
		return fmt.Errorf("%w: empty product id", errs.ErrValidation)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", errs.ErrValidation)
	}
	cartID, err := c.cartID()
	if err != nil {
		return err
	}
	req := addItemRequest{CartID: cartID, ProductID: productID, Quantity: quantity}
	if priceAtAdd > 0 {
		req.PriceAtAdd = &priceAtAdd
	}
	resp, err := c.do(ctx, http.MethodPost, c.base+"/api/cart/items", req)
	if err != nil {
		return err
	}
	if !is2xx(resp.StatusCode) {
		return rejection(resp)
	}
	drain(resp)
	return nil
}

// UpdateItemQuantity sets an existing line's quantity. Quantity 0 is rejected:
// the caller decides whether to turn it into a removal.
func (c *Client) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	if itemID == "" {
		return fmt.Errorf("%w: empty item id", errs.ErrValidation)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", errs.ErrValidation)
	}
	cartID, err := c.cartID()
	if err != nil {
		return err
	}
	u := c.base + "/api/cart/items/" + url.PathEscape(itemID)
	resp, err := c.do(ctx, http.MethodPatch, u, updateQuantityRequest{CartID: cartID, Quantity: quantity})
	if err != nil {
		return err
	}
	if !is2xx(resp.StatusCode) {
		return rejection(resp)
	}
	drain(resp)
	return nil
}

// RemoveItem deletes one line. Not-found is treated as success: the line is
// gone either way.
func (c *Client) RemoveItem(ctx context.Context, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("%w: empty item id", errs.ErrValidation)
	}
	cartID, err := c.cartID()
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/api/cart/items/%s?cartId=%s", c.base, url.PathEscape(itemID), url.QueryEscape(cartID))
	resp, err := c.do(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		drain(resp)
		return nil
	}
	if !is2xx(resp.StatusCode) {
		return rejection(resp)
	}
	drain(resp)
	return nil
}

// ClearCart deletes all lines for the current identity.
func (c *Client) ClearCart(ctx context.Context) error {
	cartID, err := c.cartID()
	if err != nil {
		return err
	}
	u := c.base + "/api/cart?cartId=" + url.QueryEscape(cartID)
	resp, err := c.do(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	if !is2xx(resp.StatusCode) {
		return rejection(resp)
	}
	drain(resp)
	return nil
}
