package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"freshtrack-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpoonacularProvider_SearchRecipes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("apiKey"))
		assert.Equal(t, "pasta", q.Get("query"))
		assert.Equal(t, "basil,tomato", q.Get("includeIngredients"))
		assert.Equal(t, "vegetarian", q.Get("diet"))
		assert.Equal(t, "30", q.Get("maxReadyTime"))
		assert.Equal(t, "10", q.Get("number"))
		assert.Equal(t, "20", q.Get("offset"))
		assert.Equal(t, "true", q.Get("addRecipeInformation"))
		assert.Equal(t, "true", q.Get("fillIngredients"))
		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"Pesto Pasta","readyInMinutes":20,"vegetarian":true}],"totalResults":42}`))
	}))
	defer srv.Close()

	p := NewSpoonacularProviderWithURL(srv.URL, "secret")
	got, err := p.SearchRecipes(context.Background(), domain.RecipeSearchParams{
		Query:        "pasta",
		Ingredients:  []string{"basil", "tomato"},
		Diet:         "vegetarian",
		MaxReadyTime: 30,
		Number:       10,
		Offset:       20,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 42, got.TotalResults)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "Pesto Pasta", got.Results[0].Title)
	assert.True(t, got.Results[0].Vegetarian)
}

func TestSpoonacularProvider_SearchOmitsEmptyFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("query"))
		assert.False(t, q.Has("includeIngredients"))
		assert.False(t, q.Has("diet"))
		assert.False(t, q.Has("maxReadyTime"))
		assert.Equal(t, "100", q.Get("number"))
		_, _ = w.Write([]byte(`{"results":[],"totalResults":0}`))
	}))
	defer srv.Close()

	got, err := NewSpoonacularProviderWithURL(srv.URL, "k").SearchRecipes(context.Background(), domain.RecipeSearchParams{Number: 250})
	require.NoError(t, err)
	assert.Empty(t, got.Results)
}

func TestSpoonacularProvider_FindByIngredients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/findByIngredients", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "apples,flour", q.Get("ingredients"))
		assert.Equal(t, "2", q.Get("ranking"))
		assert.Equal(t, "true", q.Get("ignorePantry"))
		assert.Equal(t, "5", q.Get("number"))
		_, _ = w.Write([]byte(`[{"id":7,"title":"Apple Crumble","usedIngredientCount":2,"missedIngredientCount":0,"usedIngredients":[{"name":"apples"},{"name":"flour"}],"missedIngredients":[]}]`))
	}))
	defer srv.Close()

	got, err := NewSpoonacularProviderWithURL(srv.URL, "k").FindByIngredients(context.Background(), []string{"apples", "flour"}, 5, 2)
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "Apple Crumble", got.Results[0].Title)
	assert.Equal(t, 2, got.Results[0].UsedIngredientCount)
}

func TestSpoonacularProvider_DetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/999/information", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("includeNutrition"))
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	got, err := NewSpoonacularProviderWithURL(srv.URL, "k").GetRecipeInformation(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSpoonacularProvider_Detail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(detailBody))
	}))
	defer srv.Close()

	got, err := NewSpoonacularProviderWithURL(srv.URL, "k").GetRecipeInformation(context.Background(), 716429)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 716429, got.ID)
	assert.Len(t, got.Instructions, 2)
}

func TestSpoonacularProvider_QuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	got, err := NewSpoonacularProviderWithURL(srv.URL, "k").GetRecipeInformation(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestSpoonacularProvider_RetriesOnceOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	got, err := NewSpoonacularProviderWithURL(srv.URL, "k").FindByIngredients(context.Background(), []string{"egg"}, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, got.Results)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
