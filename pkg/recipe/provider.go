package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"freshtrack-backend/domain"

	"github.com/gofiber/fiber/v2/log"
)

const (
	defaultBaseURL  = "https://api.spoonacular.com"
	requestTimeout  = 15 * time.Second
	retryDelay      = 500 * time.Millisecond
	maxUpstreamPage = 100
)

type (
	// RecipeProvider queries an upstream recipe API. A nil result with a nil
	// error means the upstream has nothing for the request.
	RecipeProvider interface {
		SearchRecipes(ctx context.Context, params domain.RecipeSearchParams) (*domain.RecipeSearchResponse, error)
		FindByIngredients(ctx context.Context, ingredients []string, number, ranking int) (*domain.RecipeByIngredientResponse, error)
		GetRecipeInformation(ctx context.Context, id int) (*domain.RecipeDetail, error)
	}

	SpoonacularProvider struct {
		baseURL    string
		apiKey     string
		httpClient *http.Client
	}
)

func NewSpoonacularProvider(apiKey string) *SpoonacularProvider {
	return NewSpoonacularProviderWithURL(defaultBaseURL, apiKey)
}

// NewSpoonacularProviderWithURL points the provider at a custom base URL.
func NewSpoonacularProviderWithURL(baseURL, apiKey string) *SpoonacularProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &SpoonacularProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (p *SpoonacularProvider) SearchRecipes(ctx context.Context, params domain.RecipeSearchParams) (*domain.RecipeSearchResponse, error) {
	q := url.Values{}
	q.Set("number", strconv.Itoa(min(params.Number, maxUpstreamPage)))
	q.Set("offset", strconv.Itoa(params.Offset))
	q.Set("addRecipeInformation", "true")
	q.Set("fillIngredients", "true")
	if params.Query != "" {
		q.Set("query", params.Query)
	}
	if len(params.Ingredients) > 0 {
		q.Set("includeIngredients", strings.Join(params.Ingredients, ","))
	}
	if params.Diet != "" {
		q.Set("diet", params.Diet)
	}
	if params.MaxReadyTime > 0 {
		q.Set("maxReadyTime", strconv.Itoa(params.MaxReadyTime))
	}

	var payload apiSearchResponse
	found, err := p.get(ctx, "/recipes/complexSearch", q, &payload)
	if err != nil || !found {
		return nil, err
	}

	res := NormalizeSearch(payload)
	return &res, nil
}

func (p *SpoonacularProvider) FindByIngredients(ctx context.Context, ingredients []string, number, ranking int) (*domain.RecipeByIngredientResponse, error) {
	q := url.Values{}
	q.Set("ingredients", strings.Join(ingredients, ","))
	q.Set("number", strconv.Itoa(min(number, maxUpstreamPage)))
	q.Set("ranking", strconv.Itoa(ranking))
	q.Set("ignorePantry", "true")

	var payload []apiByIngredientResult
	found, err := p.get(ctx, "/recipes/findByIngredients", q, &payload)
	if err != nil || !found {
		return nil, err
	}

	res := NormalizeByIngredients(payload)
	return &res, nil
}

func (p *SpoonacularProvider) GetRecipeInformation(ctx context.Context, id int) (*domain.RecipeDetail, error) {
	q := url.Values{}
	q.Set("includeNutrition", "false")

	var payload apiRecipe
	found, err := p.get(ctx, "/recipes/"+strconv.Itoa(id)+"/information", q, &payload)
	if err != nil || !found {
		return nil, err
	}

	res := NormalizeDetail(payload)
	return &res, nil
}

// get decodes a 200 response into out. A 404 reports found=false.
func (p *SpoonacularProvider) get(ctx context.Context, path string, q url.Values, out any) (bool, error) {
	q.Set("apiKey", p.apiKey)
	reqURL := p.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("spoonacular: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.doWithRetry(ctx, req, path)
	if err != nil {
		return false, fmt.Errorf("spoonacular: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("spoonacular: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("spoonacular: read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("spoonacular: decode json: %w", err)
	}
	return true, nil
}

// doWithRetry retries once on a network error or a 5xx status.
func (p *SpoonacularProvider) doWithRetry(ctx context.Context, req *http.Request, path string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	log.Warnw("spoonacular retry", "path", path, "reason", reason)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.httpClient.Do(req)
}
