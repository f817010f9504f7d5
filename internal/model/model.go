// Package model defines domain entities used by the client, view model and checkout layers.
package model

// Product is a catalog entry as served by the remote store API.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         int64 // list price in FCFA
	DiscountPrice int64 // 0 when no discount
	Images        []string
	Brand         string
}

// CartItem is a single product line in a remote cart.
type CartItem struct {
	ID         string   // server-assigned line id
	Product    *Product // nil when the referenced product no longer exists server-side
	Quantity   int
	PriceAtAdd *int64 // price snapshot captured when the line was first added
	LineTotal  *int64 // server-precomputed line total, when provided
}

// EffectiveUnitPrice resolves the price used for totals:
// priceAtAdd if set, else discount price if positive, else list price.
// ok is false when the referenced product is gone and no snapshot exists.
func (it CartItem) EffectiveUnitPrice() (price int64, ok bool) {
	if it.PriceAtAdd != nil {
		return *it.PriceAtAdd, true
	}
	if it.Product == nil {
		return 0, false
	}
	if it.Product.DiscountPrice > 0 {
		return it.Product.DiscountPrice, true
	}
	return it.Product.Price, true
}

// Cart is the set of lines owned by one device identity.
type Cart struct {
	CartID string
	Items  []CartItem
}

// CartTotals carries server-computed aggregates, when the API returns them.
type CartTotals struct {
	Quantity    int
	Items       int
	TotalAmount int64
}

// CartSnapshot is the result of a full cart fetch.
type CartSnapshot struct {
	Cart   Cart
	Totals *CartTotals
}

// OrderItem is a product line frozen into an order payload.
type OrderItem struct {
	ProductID string
	Name      string
	Price     int64
	Quantity  int
	Image     string
	Brand     string
}

// Order is the checkout payload submitted once; it is never re-read.
type Order struct {
	Phone           string
	ShippingAddress string
	Notes           string
	Items           []OrderItem
	ShippingFee     int64
	Discount        int64
	PaymentMethod   string
	ClientRef       string // client-generated reference for support follow-up
}

// OrderReceipt is the server acknowledgement of a created order.
type OrderReceipt struct {
	OrderID string
	Message string
}

// Category groups catalog products.
type Category struct {
	ID    string
	Name  string
	Image string
}
