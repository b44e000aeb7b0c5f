package external

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog()

	foods, err := c.Search(context.Background(), "RAW", 3)
	require.NoError(t, err)
	require.Len(t, foods, 3)
	assert.Equal(t, "Chicken Breast, Raw", foods[0].Name)

	foods, err = c.Search(context.Background(), "oat", 10)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "173904", foods[0].SourceID)
	assert.Equal(t, 50.0, foods[0].Facts.ServingSize)

	_, err = c.Barcode(context.Background(), "123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenFoodFactsSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "nutella", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "2", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`{"products":[
			{"code":"3017620422003","product_name":"Nutella","brands":"Ferrero,Nutella",
			 "nutriments":{"energy-kcal_100g":539,"proteins_100g":6.3,"carbohydrates_100g":57.5,"fat_100g":30.9,"sodium_100g":0.0428}},
			{"code":"1","product_name":"","nutriments":{"energy-kcal_100g":1}},
			{"code":"2","product_name":"No energy","nutriments":{}}
		]}`))
	}))
	defer srv.Close()

	off := NewOpenFoodFacts(srv.URL+"/", time.Second)
	foods, err := off.Search(context.Background(), "nutella", 2)
	require.NoError(t, err)
	require.Len(t, foods, 1)

	f := foods[0]
	assert.Equal(t, "Nutella", f.Name)
	assert.Equal(t, "Ferrero", f.Brand)
	assert.Equal(t, "openfoodfacts", f.Source)
	assert.Equal(t, "3017620422003", f.SourceID)
	assert.Equal(t, 539.0, f.Facts.Calories)
	assert.Equal(t, 100.0, f.Facts.ServingSize)
	require.NotNil(t, f.Facts.SodiumMg)
	assert.InDelta(t, 42.8, *f.Facts.SodiumMg, 1e-9)
	assert.Nil(t, f.Facts.FiberG)
}

func TestOpenFoodFactsBarcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/product/737628064502.json":
			_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Rice Noodles","nutriments":{"energy-kcal_100g":385}}}`))
		case "/api/v2/product/000.json":
			_, _ = w.Write([]byte(`{"status":0}`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	off := NewOpenFoodFacts(srv.URL, time.Second)

	f, err := off.Barcode(context.Background(), "737628064502")
	require.NoError(t, err)
	assert.Equal(t, "737628064502", f.Barcode)
	assert.Equal(t, 385.0, f.Facts.Calories)

	_, err = off.Barcode(context.Background(), "000")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = off.Barcode(context.Background(), "999")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "500")
}

func TestUSDASearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foods/search", r.URL.Path)
		assert.Equal(t, "DEMO_KEY", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"foods":[{"fdcId":171077,"description":"Chicken, broilers or fryers, breast",
			"foodNutrients":[
				{"nutrientNumber":"208","value":120},
				{"nutrientNumber":"203","value":22.5},
				{"nutrientNumber":"204","value":2.6},
				{"nutrientNumber":"307","value":45}
			]}]}`))
	}))
	defer srv.Close()

	u := NewUSDA(srv.URL, "", time.Second)
	foods, err := u.Search(context.Background(), "chicken", 5)
	require.NoError(t, err)
	require.Len(t, foods, 1)

	f := foods[0]
	assert.Equal(t, "171077", f.SourceID)
	assert.Equal(t, "usda", f.Source)
	assert.Equal(t, 120.0, f.Facts.Calories)
	assert.Equal(t, 22.5, f.Facts.ProteinG)
	assert.Zero(t, f.Facts.CarbsG)
	require.NotNil(t, f.Facts.SodiumMg)
	assert.Equal(t, 45.0, *f.Facts.SodiumMg)
	assert.Nil(t, f.Facts.SugarG)
}

type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }
func (failingProvider) Search(context.Context, string, int) ([]Food, error) {
	return nil, errors.New("unavailable")
}
func (failingProvider) Barcode(context.Context, string) (*Food, error) {
	return nil, errors.New("unavailable")
}

func TestChainSkipsFailuresAndDuplicates(t *testing.T) {
	chain := NewChain(zap.NewNop(), failingProvider{}, NewCatalog(), NewCatalog())

	foods := chain.Search(context.Background(), "raw", 20)
	assert.Len(t, foods, 5)

	foods = chain.Search(context.Background(), "raw", 2)
	assert.Len(t, foods, 2)

	_, err := chain.Barcode(context.Background(), "123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewProviders(t *testing.T) {
	providers, err := New([]string{"catalog", "USDA", "openfoodfacts"}, Options{Timeout: time.Second})
	require.NoError(t, err)
	require.Len(t, providers, 3)
	assert.Equal(t, "usda", providers[1].Name())

	_, err = New([]string{"edamam"}, Options{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
