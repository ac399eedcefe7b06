package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProductCatalog/internal/catalog"
)

func TestClient_RoundTrip(t *testing.T) {
	ts, _ := newCatalogTS(t, catalog.HTTPDeps{})
	c := catalog.NewClient(ts.URL + "/")
	ctx := context.Background()

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	in := fakeProduct()
	in.ID = 77

	created, location, err := c.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, in.Name, created.Name)
	assert.True(t, in.Price.Equal(created.Price), "price %s != %s", in.Price, created.Price)
	assert.Equal(t, catalog.ProductPath(3), location)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.True(t, created.Price.Equal(got.Price))

	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.True(t, containsProduct(list, created))
}

func TestClient_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		ts, _ := newCatalogTS(t, catalog.HTTPDeps{})

		_, err := catalog.NewClient(ts.URL).Get(ctx, 9999)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("bad status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		t.Cleanup(ts.Close)

		c := catalog.NewClient(ts.URL)

		_, err := c.List(ctx)
		assert.ErrorIs(t, err, catalog.ErrBadStatus)

		_, err = c.Get(ctx, 1)
		assert.ErrorIs(t, err, catalog.ErrBadStatus)

		_, _, err = c.Create(ctx, catalog.Product{Name: "x"})
		assert.ErrorIs(t, err, catalog.ErrBadStatus)
	})

	t.Run("unavailable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		_, err := catalog.NewClient(url).List(ctx)
		assert.ErrorIs(t, err, catalog.ErrUnavailable)
	})
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	testCases := map[string]string{
		"http://localhost:8082/":  "http://localhost:8082",
		"http://localhost:8082//": "http://localhost:8082",
		"localhost:8082/":         "localhost:8082",
		"/catalog/":               "/catalog",
	}

	for in, want := range testCases {
		assert.Equal(t, want, catalog.NewClient(in).BaseURL, in)
	}
}
