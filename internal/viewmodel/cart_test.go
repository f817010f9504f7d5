package viewmodel

import (
	"testing"

	"github.com/Uried/Nexora/internal/model"
)

func i64(v int64) *int64 { return &v }

func TestBuild_PriceFallbackOrder(t *testing.T) {
	t.Parallel()
	p := &model.Product{ID: "p1", Name: "Black Opium", Price: 70000, DiscountPrice: 60000}

	cases := []struct {
		name string
		item model.CartItem
		want int64
	}{
		{"priceAtAdd wins", model.CartItem{Product: p, Quantity: 1, PriceAtAdd: i64(65000)}, 65000},
		{"discount over list", model.CartItem{Product: p, Quantity: 1}, 60000},
		{"list price last", model.CartItem{Product: &model.Product{Price: 70000}, Quantity: 1}, 70000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Build(&model.CartSnapshot{Cart: model.Cart{Items: []model.CartItem{tc.item}}}, 0)
			if v.Lines[0].UnitPrice != tc.want {
				t.Fatalf("unit price want %d, got %d", tc.want, v.Lines[0].UnitPrice)
			}
		})
	}
}

func TestBuild_TwoItemScenario(t *testing.T) {
	t.Parallel()
	snap := &model.CartSnapshot{Cart: model.Cart{Items: []model.CartItem{
		{ID: "l1", Product: &model.Product{Name: "Black Opium"}, Quantity: 1, PriceAtAdd: i64(65000)},
		{ID: "l2", Product: &model.Product{Name: "Coco Mademoiselle"}, Quantity: 2, PriceAtAdd: i64(72000)},
	}}}

	v := Build(snap, 1000)
	if v.Subtotal != 209000 {
		t.Fatalf("subtotal want 209000, got %d", v.Subtotal)
	}
	if v.ShippingFee != 1000 {
		t.Fatalf("shipping fee want 1000, got %d", v.ShippingFee)
	}
	if v.Total != 210000 {
		t.Fatalf("total want 210000, got %d", v.Total)
	}
}

func TestBuild_EmptyCart(t *testing.T) {
	t.Parallel()
	v := Build(&model.CartSnapshot{}, 1000)
	if v.ShippingFee != 0 || v.Total != 0 || v.Subtotal != 0 {
		t.Fatalf("empty cart must cost nothing, got %+v", v)
	}
}

func TestBuild_NilSnapshot(t *testing.T) {
	t.Parallel()
	v := Build(nil, 1000)
	if len(v.Lines) != 0 || v.Total != 0 {
		t.Fatalf("nil snapshot must yield empty view, got %+v", v)
	}
}

func TestBuild_ServerLineTotalPreferred(t *testing.T) {
	t.Parallel()
	snap := &model.CartSnapshot{Cart: model.Cart{Items: []model.CartItem{
		{Product: &model.Product{Price: 10000}, Quantity: 3, LineTotal: i64(25000)},
	}}}
	v := Build(snap, 0)
	if v.Lines[0].LineTotal != 25000 || v.Subtotal != 25000 {
		t.Fatalf("server line total must win, got %+v", v.Lines[0])
	}
}

func TestBuild_UnavailableProduct(t *testing.T) {
	t.Parallel()
	snap := &model.CartSnapshot{Cart: model.Cart{Items: []model.CartItem{
		{ID: "gone", Product: nil, Quantity: 2},
		{ID: "ok", Product: &model.Product{Name: "Sauvage", Price: 58000}, Quantity: 1},
	}}}

	v := Build(snap, 1000)
	if len(v.Lines) != 2 {
		t.Fatalf("placeholder line must be rendered, got %d lines", len(v.Lines))
	}
	if !v.Lines[0].Unavailable {
		t.Fatalf("first line should be unavailable")
	}
	if v.Subtotal != 58000 {
		t.Fatalf("unavailable line must be excluded from totals, subtotal=%d", v.Subtotal)
	}
	if v.Total != 59000 {
		t.Fatalf("total want 59000, got %d", v.Total)
	}
}

func TestBuild_DeletedProductExcludedEvenWithSnapshot(t *testing.T) {
	t.Parallel()
	snap := &model.CartSnapshot{Cart: model.Cart{Items: []model.CartItem{
		{ID: "gone", Product: nil, Quantity: 2, PriceAtAdd: i64(40000)},
	}}}
	v := Build(snap, 0)
	if !v.Lines[0].Unavailable {
		t.Fatalf("deleted product must render as placeholder")
	}
	if v.Subtotal != 0 {
		t.Fatalf("deleted product must not be priced, subtotal=%d", v.Subtotal)
	}
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 FCFA"},
		{999, "999 FCFA"},
		{1000, "1 000 FCFA"},
		{144000, "144 000 FCFA"},
		{209000, "209 000 FCFA"},
		{1234567, "1 234 567 FCFA"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.in); got != tc.want {
			t.Fatalf("FormatPrice(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
