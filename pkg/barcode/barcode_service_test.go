package barcode

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls   int32
	product *domain.ProductResponse
	err     error
}

func (f *fakeProvider) FetchProduct(_ context.Context, code string) (*domain.ProductResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.product == nil {
		return nil, f.err
	}
	p := *f.product
	p.Barcode = code
	return &p, f.err
}

// spyStore records every store access.
type spyStore struct {
	*cache.MemoryStore
	gets int32
	sets int32
}

func newSpyStore() *spyStore {
	return &spyStore{MemoryStore: cache.NewMemoryStore()}
}

func (s *spyStore) Get(ctx context.Context, key string) ([]byte, error) {
	atomic.AddInt32(&s.gets, 1)
	return s.MemoryStore.Get(ctx, key)
}

func (s *spyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	atomic.AddInt32(&s.sets, 1)
	return s.MemoryStore.Set(ctx, key, value, ttl)
}

func TestBarcodeService_InvalidBarcodeTouchesNothing(t *testing.T) {
	provider := &fakeProvider{product: &domain.ProductResponse{Name: "x"}}
	store := newSpyStore()
	svc := NewBarcodeService(provider, store, DefaultPolicy())

	for _, code := range []string{"", "1234567", "123456789", "12345678901", "abcdefgh", "1234567a", "123456789012345", "12 34 5678"} {
		_, err := svc.LookupBarcode(context.Background(), code)
		require.Error(t, err, code)
		assert.True(t, errors.Is(err, domain.ErrValidation), code)
	}

	assert.Zero(t, atomic.LoadInt32(&provider.calls))
	assert.Zero(t, atomic.LoadInt32(&store.gets))
	assert.Zero(t, atomic.LoadInt32(&store.sets))
}

func TestBarcodeService_TrimsAndLooksUp(t *testing.T) {
	provider := &fakeProvider{product: &domain.ProductResponse{Name: "Milk", Source: domain.ProductSourceOpenFoodFacts}}
	store := newSpyStore()
	svc := NewBarcodeService(provider, store, DefaultPolicy())

	got, err := svc.LookupBarcode(context.Background(), "  012345678905 ")
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)
	assert.Equal(t, "012345678905", got.Barcode)

	_, err = store.MemoryStore.Get(context.Background(), "barcode:012345678905")
	assert.NoError(t, err)
}

func TestBarcodeService_IdempotentWithinTTL(t *testing.T) {
	provider := &fakeProvider{product: &domain.ProductResponse{Name: "Milk"}}
	svc := NewBarcodeService(provider, newSpyStore(), DefaultPolicy())

	first, err := svc.LookupBarcode(context.Background(), "12345678")
	require.NoError(t, err)
	second, err := svc.LookupBarcode(context.Background(), "12345678")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestBarcodeService_NotFoundIsNegativelyCached(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewBarcodeService(provider, newSpyStore(), DefaultPolicy())

	for i := 0; i < 3; i++ {
		_, err := svc.LookupBarcode(context.Background(), "00000000")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestBarcodeService_UpstreamFailureIsNotFound(t *testing.T) {
	provider := &fakeProvider{err: errors.New("openfoodfacts: unexpected status 503")}
	svc := NewBarcodeService(provider, newSpyStore(), DefaultPolicy())

	_, err := svc.LookupBarcode(context.Background(), "12345678")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
