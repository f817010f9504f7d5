package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Uried/Nexora/internal/errs"
	"github.com/Uried/Nexora/internal/model"
)

// PlaceOrder submits the order payload once. A 4xx/5xx response surfaces the
// server's {"error": ...} message verbatim through the returned Rejection.
func (c *Client) PlaceOrder(ctx context.Context, order model.Order) (*model.OrderReceipt, error) {
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", errs.ErrValidation)
	}
	resp, err := c.do(ctx, http.MethodPost, c.base+"/api/orders", orderToWire(order))
	if err != nil {
		return nil, err
	}
	if !is2xx(resp.StatusCode) {
		return nil, rejection(resp)
	}
	var wire orderResponse
	if err := decode(resp, &wire); err != nil {
		return nil, err
	}
	return &model.OrderReceipt{OrderID: wire.OrderID, Message: wire.Message}, nil
}
