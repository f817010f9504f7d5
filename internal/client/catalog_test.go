package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Uried/Nexora/internal/errs"
)

func TestListProducts(t *testing.T) {
	t.Parallel()
	c := newStubClient(t, "device-1")

	products, err := c.ListProducts(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, products, 4)
	require.Equal(t, "Black Opium", products[0].Name)
	require.Equal(t, "Yves Saint Laurent", products[0].Brand)
}

func TestListProducts_Pagination(t *testing.T) {
	t.Parallel()
	c := newStubClient(t, "device-1")

	page1, err := c.ListProducts(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)

	page3, err := c.ListProducts(context.Background(), 3, 2)
	require.NoError(t, err)
	require.Empty(t, page3)
}

func TestGetProduct(t *testing.T) {
	t.Parallel()
	c := newStubClient(t, "device-1")

	p, err := c.GetProduct(context.Background(), "p-loui-martin")
	require.NoError(t, err)
	require.Equal(t, "Loui Martin", p.Name)
	require.Equal(t, int64(39000), p.Price)
	require.Equal(t, int64(35000), p.DiscountPrice)

	_, err = c.GetProduct(context.Background(), "p-nope")
	require.ErrorIs(t, err, errs.ErrServerRejected)
}

func TestListProductsByCategory(t *testing.T) {
	t.Parallel()
	c := newStubClient(t, "device-1")

	products, err := c.ListProductsByCategory(context.Background(), "c-homme")
	require.NoError(t, err)
	require.Len(t, products, 2)
}

func TestListCategories(t *testing.T) {
	t.Parallel()
	c := newStubClient(t, "device-1")

	cats, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	require.Equal(t, "Parfums Femme", cats[0].Name)
}
