package barcode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"freshtrack-backend/domain"

	"github.com/gofiber/fiber/v2/log"
)

const (
	defaultBaseURL   = "https://world.openfoodfacts.org"
	defaultUserAgent = "FreshTrack/1.0"
	requestTimeout   = 10 * time.Second
	retryDelay       = 500 * time.Millisecond
)

type (
	// ProductProvider resolves a barcode against an upstream product
	// database. A nil product with a nil error means the upstream does not
	// know the barcode.
	ProductProvider interface {
		FetchProduct(ctx context.Context, code string) (*domain.ProductResponse, error)
	}

	// OpenFoodFactsProvider reads products from the Open Food Facts v2 API.
	OpenFoodFactsProvider struct {
		baseURL    string
		userAgent  string
		httpClient *http.Client
	}
)

func NewOpenFoodFactsProvider(userAgent string) *OpenFoodFactsProvider {
	return NewOpenFoodFactsProviderWithURL(defaultBaseURL, userAgent)
}

// NewOpenFoodFactsProviderWithURL points the provider at a custom base URL.
func NewOpenFoodFactsProviderWithURL(baseURL, userAgent string) *OpenFoodFactsProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &OpenFoodFactsProvider{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (p *OpenFoodFactsProvider) FetchProduct(ctx context.Context, code string) (*domain.ProductResponse, error) {
	reqURL := p.baseURL + "/api/v2/product/" + url.PathEscape(code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts: create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.doWithRetry(ctx, req, code)
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts: read body: %w", err)
	}

	var payload offResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("openfoodfacts: decode json: %w", err)
	}

	if payload.Status != 1 || payload.Product == nil {
		return nil, nil
	}

	return NormalizeProduct(code, *payload.Product), nil
}

// doWithRetry retries once on a network error or a 5xx status.
func (p *OpenFoodFactsProvider) doWithRetry(ctx context.Context, req *http.Request, code string) (*http.Response, error) {
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
	log.Warnw("openfoodfacts retry", "barcode", code, "reason", reason)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.httpClient.Do(req)
}
