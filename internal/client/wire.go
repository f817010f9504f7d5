package client

import "github.com/Uried/Nexora/internal/model"

// Wire types mirror the store API's JSON shapes; converters keep the rest of
// the codebase on the domain model.

type wireProduct struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	DiscountPrice int64    `json:"discountPrice"`
	Images        []string `json:"images"`
	Details       struct {
		Brand string `json:"brand"`
	} `json:"details"`
}

func (w *wireProduct) toModel() *model.Product {
	if w == nil {
		return nil
	}
	return &model.Product{
		ID:            w.ID,
		Name:          w.Name,
		Description:   w.Description,
		Price:         w.Price,
		DiscountPrice: w.DiscountPrice,
		Images:        w.Images,
		Brand:         w.Details.Brand,
	}
}

type wireCartItem struct {
	ID         string       `json:"_id"`
	Product    *wireProduct `json:"productId"` // populated product, null when deleted
	Quantity   int          `json:"quantity"`
	PriceAtAdd *int64       `json:"priceAtAdd"`
	LineTotal  *int64       `json:"lineTotal"`
}

func (w wireCartItem) toModel() model.CartItem {
	return model.CartItem{
		ID:         w.ID,
		Product:    w.Product.toModel(),
		Quantity:   w.Quantity,
		PriceAtAdd: w.PriceAtAdd,
		LineTotal:  w.LineTotal,
	}
}

type wireTotals struct {
	Quantity    int   `json:"quantity"`
	Items       int   `json:"items"`
	TotalAmount int64 `json:"totalAmount"`
}

type wireCartResponse struct {
	Cart struct {
		CartID string         `json:"cartId"`
		Items  []wireCartItem `json:"items"`
	} `json:"cart"`
	Totals *wireTotals `json:"totals"`
}

func (w wireCartResponse) toModel() *model.CartSnapshot {
	snap := &model.CartSnapshot{
		Cart: model.Cart{CartID: w.Cart.CartID, Items: make([]model.CartItem, 0, len(w.Cart.Items))},
	}
	for _, it := range w.Cart.Items {
		snap.Cart.Items = append(snap.Cart.Items, it.toModel())
	}
	if w.Totals != nil {
		snap.Totals = &model.CartTotals{
			Quantity:    w.Totals.Quantity,
			Items:       w.Totals.Items,
			TotalAmount: w.Totals.TotalAmount,
		}
	}
	return snap
}

type addItemRequest struct {
	CartID     string `json:"cartId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceAtAdd *int64 `json:"priceAtAdd,omitempty"`
}

type updateQuantityRequest struct {
	CartID   string `json:"cartId"`
	Quantity int    `json:"quantity"`
}

type wireCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (w wireCategory) toModel() model.Category {
	return model.Category{ID: w.ID, Name: w.Name, Image: w.Image}
}

type wireOrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
	Brand     string `json:"brand"`
}

type orderRequest struct {
	Phone           string          `json:"phone"`
	ShippingAddress string          `json:"shippingAddress"`
	Notes           string          `json:"notes,omitempty"`
	Items           []wireOrderItem `json:"items"`
	ShippingFee     int64           `json:"shippingFee"`
	Discount        int64           `json:"discount"`
	PaymentMethod   string          `json:"paymentMethod"`
	ClientRef       string          `json:"clientRef,omitempty"`
}

func orderToWire(o model.Order) orderRequest {
	items := make([]wireOrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, wireOrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
			Brand:     it.Brand,
		})
	}
	return orderRequest{
		Phone:           o.Phone,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		Items:           items,
		ShippingFee:     o.ShippingFee,
		Discount:        o.Discount,
		PaymentMethod:   o.PaymentMethod,
		ClientRef:       o.ClientRef,
	}
}

type orderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}
