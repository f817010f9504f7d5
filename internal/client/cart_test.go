package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Uried/Nexora/internal/errs"
	"github.com/Uried/Nexora/internal/stubapi"
)

type staticIdentity string

func (s staticIdentity) GetOrCreateDeviceID() string { return string(s) }

func newStubClient(t *testing.T, id string) *Client {
	t.Helper()
	srv := httptest.NewServer(stubapi.New(stubapi.NewStore(), nil).Handler())
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Identity: staticIdentity(id)})
}

func newHandlerClient(t *testing.T, h http.HandlerFunc, id string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Identity: staticIdentity(id)})
}

func TestCart_AddThenFetchReflectsLine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newStubClient(t, "device-1")

	require.NoError(t, c.AddItem(ctx, "p-black-opium", 1, 65000))

	snap := c.FetchCart(ctx)
	require.NotNil(t, snap)
	require.Len(t, snap.Cart.Items, 1)
	it := snap.Cart.Items[0]
	require.Equal(t, 1, it.Quantity)
	require.NotNil(t, it.PriceAtAdd)
	require.Equal(t, int64(65000), *it.PriceAtAdd)
	require.NotNil(t, it.Product)
	require.Equal(t, "Black Opium", it.Product.Name)
	require.Equal(t, "Yves Saint Laurent", it.Product.Brand)
}

func TestCart_AddSameProductIncrements(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newStubClient(t, "device-1")

	require.NoError(t, c.AddItem(ctx, "p-sauvage", 1, 0))
	require.NoError(t, c.AddItem(ctx, "p-sauvage", 2, 0))

	snap := c.FetchCart(ctx)
	require.NotNil(t, snap)
	require.Len(t, snap.Cart.Items, 1)
	require.Equal(t, 3, snap.Cart.Items[0].Quantity)
}

func TestCart_UpdateQuantityAndRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newStubClient(t, "device-1")

	require.NoError(t, c.AddItem(ctx, "p-coco-mademoiselle", 1, 0))
	snap := c.FetchCart(ctx)
	require.NotNil(t, snap)
	itemID := snap.Cart.Items[0].ID

	require.NoError(t, c.UpdateItemQuantity(ctx, itemID, 3))
	snap = c.FetchCart(ctx)
	require.Equal(t, 3, snap.Cart.Items[0].Quantity)

	require.NoError(t, c.RemoveItem(ctx, itemID))
	snap = c.FetchCart(ctx)
	require.NotNil(t, snap)
	require.Empty(t, snap.Cart.Items)
}

func TestCart_RemoveNotFoundIsSuccess(t *testing.T) {
	t.Parallel()
	c := newStubClient(t, "device-1")
	require.NoError(t, c.RemoveItem(context.Background(), "no-such-line"))
}

func TestCart_ClearCart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newStubClient(t, "device-1")

	require.NoError(t, c.AddItem(ctx, "p-black-opium", 1, 0))
	require.NoError(t, c.AddItem(ctx, "p-sauvage", 1, 0))
	require.NoError(t, c.ClearCart(ctx))

	snap := c.FetchCart(ctx)
	require.NotNil(t, snap)
	require.Empty(t, snap.Cart.Items)
}

func TestCart_CartsAreIdentityScoped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	srv := httptest.NewServer(stubapi.New(stubapi.NewStore(), nil).Handler())
	t.Cleanup(srv.Close)
	a := New(Config{BaseURL: srv.URL, Identity: staticIdentity("device-a")})
	b := New(Config{BaseURL: srv.URL, Identity: staticIdentity("device-b")})

	require.NoError(t, a.AddItem(ctx, "p-black-opium", 1, 0))

	snapB := b.FetchCart(ctx)
	require.NotNil(t, snapB)
	require.Empty(t, snapB.Cart.Items)
}

func TestFetchCart_EmptyDistinctFromUnloadable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Existing identity, nothing added: empty cart, not nil.
	c := newStubClient(t, "device-1")
	snap := c.FetchCart(ctx)
	require.NotNil(t, snap)
	require.Empty(t, snap.Cart.Items)

	// No identity: could not load.
	noID := newStubClient(t, "")
	require.Nil(t, noID.FetchCart(ctx))

	// Server failure: could not load.
	broken := newHandlerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "device-1")
	require.Nil(t, broken.FetchCart(ctx))
}

func TestFetchCart_NetworkErrorReturnsNil(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := New(Config{BaseURL: url, Identity: staticIdentity("device-1")})
	require.Nil(t, c.FetchCart(context.Background()))
}

func TestAddItem_ValidationMakesNoNetworkCall(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := newHandlerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}, "device-1")

	err := c.AddItem(context.Background(), "p-x", 0, 0)
	require.ErrorIs(t, err, errs.ErrValidation)
	err = c.UpdateItemQuantity(context.Background(), "line-1", 0)
	require.ErrorIs(t, err, errs.ErrValidation)
	require.Zero(t, calls.Load())
}

func TestAddItem_MissingIdentity(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := newHandlerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}, "")

	err := c.AddItem(context.Background(), "p-x", 1, 0)
	require.ErrorIs(t, err, errs.ErrMissingIdentity)
	require.Zero(t, calls.Load())
}

func TestAddItem_ServerMessageSurfacedVerbatim(t *testing.T) {
	t.Parallel()
	c := newHandlerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Stock insuffisant"}`))
	}, "device-1")

	err := c.AddItem(context.Background(), "p-x", 1, 0)
	require.ErrorIs(t, err, errs.ErrServerRejected)
	var rej *errs.Rejection
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "Stock insuffisant", rej.Message)
	require.Equal(t, http.StatusConflict, rej.Status)
}

func TestAddItem_PlainTextBodySurfaced(t *testing.T) {
	t.Parallel()
	c := newHandlerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("produit inconnu"))
	}, "device-1")

	err := c.AddItem(context.Background(), "p-x", 1, 0)
	var rej *errs.Rejection
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "produit inconnu", rej.Message)
}

func TestAddItem_EmptyBodyFallsBackToStatus(t *testing.T) {
	t.Parallel()
	c := newHandlerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "device-1")

	err := c.AddItem(context.Background(), "p-x", 1, 0)
	var rej *errs.Rejection
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "HTTP 502", rej.Error())
}

func TestMutations_NetworkErrorTaxonomy(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := New(Config{BaseURL: url, Identity: staticIdentity("device-1")})

	ctx := context.Background()
	require.ErrorIs(t, c.AddItem(ctx, "p-x", 1, 0), errs.ErrNetwork)
	require.ErrorIs(t, c.UpdateItemQuantity(ctx, "line-1", 2), errs.ErrNetwork)
	require.ErrorIs(t, c.RemoveItem(ctx, "line-1"), errs.ErrNetwork)
	require.ErrorIs(t, c.ClearCart(ctx), errs.ErrNetwork)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"cart":{"cartId":"d","items":[]}}`))
	}))
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL + "/", Identity: staticIdentity("d")})
	require.NotNil(t, c.FetchCart(context.Background()))
	require.Equal(t, "/api/cart/full/d", gotPath)
}
