// Package viewmodel derives display values from a cart snapshot. It is pure:
// no network access, no mutation of the snapshot.
package viewmodel

import "github.com/Uried/Nexora/internal/model"

// Line is one cart row ready for display.
type Line struct {
	ItemID      string
	Name        string
	Brand       string
	Image       string
	Quantity    int
	UnitPrice   int64
	LineTotal   int64
	Unavailable bool // product deleted server-side; excluded from totals
}

// View is the derived cart state consumed by the UI layer.
type View struct {
	Lines       []Line
	Subtotal    int64
	ShippingFee int64 // 0 when the cart has no items
	Total       int64
}

// Build computes the view for a snapshot. A nil snapshot (cart could not be
// loaded) yields an empty view, which the UI renders as an error state
// distinct from an empty cart.
func Build(snap *model.CartSnapshot, shippingFee int64) View {
	if snap == nil {
		return View{}
	}
	v := View{Lines: make([]Line, 0, len(snap.Cart.Items))}
	for _, it := range snap.Cart.Items {
		line := Line{ItemID: it.ID, Quantity: it.Quantity}
		// A line whose product was deleted server-side is shown as a
		// placeholder and never priced, even with a snapshot.
		if it.Product == nil {
			line.Unavailable = true
			line.Name = "Produit indisponible"
			v.Lines = append(v.Lines, line)
			continue
		}
		line.Name = it.Product.Name
		line.Brand = it.Product.Brand
		if len(it.Product.Images) > 0 {
			line.Image = it.Product.Images[0]
		}
		unit, _ := it.EffectiveUnitPrice()
		line.UnitPrice = unit
		if it.LineTotal != nil {
			line.LineTotal = *it.LineTotal
		} else {
			line.LineTotal = unit * int64(it.Quantity)
		}
		v.Subtotal += line.LineTotal
		v.Lines = append(v.Lines, line)
	}
	if len(snap.Cart.Items) > 0 {
		v.ShippingFee = shippingFee
	}
	v.Total = v.Subtotal + v.ShippingFee
	return v
}

// FormatPrice renders an amount with space-grouped thousands and the FCFA
// suffix, e.g. 144000 -> "144 000 FCFA".
func FormatPrice(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := []byte{}
	if n == 0 {
		digits = []byte{'0'}
	}
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	// digits are reversed; emit groups of three
	out := make([]byte, 0, len(digits)+len(digits)/3+1)
	if neg {
		out = append(out, '-')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
		if i > 0 && i%3 == 0 {
			out = append(out, ' ')
		}
	}
	return string(out) + " FCFA"
}
