package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, 5*time.Second)
}

func TestCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		io.WriteString(w, `["electronics","jewelery"]`)
	})

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery"}, categories)
}

func TestProductsByCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// категория с пробелом должна быть экранирована в пути
		assert.Equal(t, "/products/category/men's%20clothing", r.URL.EscapedPath())
		io.WriteString(w, `[{"id":1,"title":"Backpack","price":109.95,"category":"men's clothing"}]`)
	})

	products, err := client.ProductsByCategory(context.Background(), "men's clothing")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Backpack", products[0].Title)
	assert.InDelta(t, 109.95, products[0].Price, 1e-9)
}

func TestProductByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/3", r.URL.Path)
		io.WriteString(w, `{"id":3,"title":"Jacket","price":55.99}`)
	})

	product, err := client.ProductByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), product.ID)
	assert.Equal(t, "Jacket", product.Title)
}

func TestRequestFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Categories(context.Background())
	require.ErrorIs(t, err, ErrRequestFailed)
}
