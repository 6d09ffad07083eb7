package barcode

import (
	"context"
	"strings"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/pkg/cache"
)

const (
	ProductTTL  = 7 * 24 * time.Hour
	NotFoundTTL = time.Hour
)

type (
	BarcodeService interface {
		LookupBarcode(ctx context.Context, code string) (domain.ProductResponse, error)
	}

	barcodeService struct {
		provider ProductProvider
		gateway  *cache.Gateway[domain.ProductResponse]
	}
)

func NewBarcodeService(provider ProductProvider, store cache.Store, policy cache.Policy) BarcodeService {
	return &barcodeService{
		provider: provider,
		gateway:  cache.NewGateway[domain.ProductResponse]("barcode", store, policy),
	}
}

func DefaultPolicy() cache.Policy {
	return cache.Policy{PositiveTTL: ProductTTL, NegativeTTL: NotFoundTTL}
}

func CacheKey(code string) string {
	return "barcode:" + code
}

func (s *barcodeService) LookupBarcode(ctx context.Context, code string) (domain.ProductResponse, error) {
	code = strings.TrimSpace(code)
	if !domain.IsValidBarcode(code) {
		return domain.ProductResponse{}, domain.NewValidationError(
			"barcode", "expected an 8, 12, 13 or 14 digit numeric code",
		)
	}

	product, ok := s.gateway.Lookup(ctx, CacheKey(code), func(ctx context.Context) (*domain.ProductResponse, error) {
		return s.provider.FetchProduct(ctx, code)
	})
	if !ok || product.Name == "" {
		return domain.ProductResponse{}, domain.ErrProductNotFound
	}

	return *product, nil
}
