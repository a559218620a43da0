package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"portfolio_backend/internal/feature/enrichment/domain/entity"
)

// mockResolver is a mock implementation of the ClassificationResolver interface.
type mockResolver struct {
	resolveFn func(ctx context.Context, symbol, name, product string) (entity.Classification, error)
	calls     int
}

func (m *mockResolver) Resolve(ctx context.Context, symbol, name, product string) (entity.Classification, error) {
	m.calls++
	if m.resolveFn != nil {
		return m.resolveFn(ctx, symbol, name, product)
	}
	return entity.Unknown(symbol, name), nil
}

func testClassification() entity.Classification {
	return entity.Classification{
		Symbol: "RY", Name: "ROYAL BANK OF CANADA",
		Sector: "Financials", Region: "Canada", Country: "Canada",
		Industry: "Banks", Confidence: 1.0, Source: entity.SourceCurated,
	}
}

// TestNewCachingResolver_Defaults verifies the TTL and namespace defaults.
func TestNewCachingResolver_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       30 * 24 * time.Hour,
			expectedNamespace: "classifications",
		},
		{
			name:              "custom values preserved",
			ttl:               time.Hour,
			namespace:         "custom",
			expectedTTL:       time.Hour,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewCachingResolver(nil, tt.ttl, &mockResolver{}, tt.namespace)

			if r.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, r.ttl)
			}
			if r.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, r.namespace)
			}
		})
	}
}

// TestCachingResolver_Resolve_NilRedis verifies the cache is bypassed when Redis is not configured.
func TestCachingResolver_Resolve_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockResolver{
		resolveFn: func(context.Context, string, string, string) (entity.Classification, error) {
			return testClassification(), nil
		},
	}
	r := NewCachingResolver(nil, time.Hour, inner, "classifications")

	got, err := r.Resolve(context.Background(), "RY", "ROYAL BANK OF CANADA", "Common Shares")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sector != "Financials" {
		t.Errorf("expected Financials, got %q", got.Sector)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
}

// TestCachingResolver_Resolve_CacheHit verifies cached answers skip the chain.
func TestCachingResolver_Resolve_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	cached := testClassification()
	data, _ := json.Marshal(cached)
	mock.ExpectGet("classifications:RY:ROYAL_BANK_OF_CANADA").SetVal(string(data))

	inner := &mockResolver{
		resolveFn: func(context.Context, string, string, string) (entity.Classification, error) {
			t.Error("inner resolver must not be called on a cache hit")
			return entity.Classification{}, nil
		},
	}
	r := NewCachingResolver(rdb, time.Hour, inner, "classifications")

	got, err := r.Resolve(context.Background(), "RY", "ROYAL BANK OF CANADA", "Common Shares")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sector != cached.Sector || got.Source != cached.Source {
		t.Errorf("unexpected cached classification: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestCachingResolver_Resolve_CacheMiss verifies a miss resolves through the chain and stores the answer.
func TestCachingResolver_Resolve_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	resolved := testClassification()
	data, _ := json.Marshal(resolved)

	key := "classifications:RY:ROYAL_BANK_OF_CANADA"
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, data, time.Hour).SetVal("OK")

	inner := &mockResolver{
		resolveFn: func(context.Context, string, string, string) (entity.Classification, error) {
			return resolved, nil
		},
	}
	r := NewCachingResolver(rdb, time.Hour, inner, "classifications")

	got, err := r.Resolve(context.Background(), "RY", "ROYAL BANK OF CANADA", "Common Shares")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sector != "Financials" {
		t.Errorf("expected Financials, got %q", got.Sector)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestCachingResolver_Resolve_CorruptedEntryDeleted verifies a corrupted cache entry is deleted and re-resolved.
func TestCachingResolver_Resolve_CorruptedEntryDeleted(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	resolved := testClassification()
	data, _ := json.Marshal(resolved)

	key := "classifications:RY:ROYAL_BANK_OF_CANADA"
	mock.ExpectGet(key).SetVal("{not json")
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectSet(key, data, time.Hour).SetVal("OK")

	inner := &mockResolver{
		resolveFn: func(context.Context, string, string, string) (entity.Classification, error) {
			return resolved, nil
		},
	}
	r := NewCachingResolver(rdb, time.Hour, inner, "classifications")

	got, err := r.Resolve(context.Background(), "RY", "ROYAL BANK OF CANADA", "Common Shares")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sector != "Financials" {
		t.Errorf("expected Financials, got %q", got.Sector)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestCachingResolver_Resolve_InnerError verifies resolver errors propagate and nothing is cached.
func TestCachingResolver_Resolve_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("classifications:RY:ROYAL_BANK_OF_CANADA").RedisNil()

	inner := &mockResolver{
		resolveFn: func(context.Context, string, string, string) (entity.Classification, error) {
			return entity.Classification{}, errors.New("chain failed")
		},
	}
	r := NewCachingResolver(rdb, time.Hour, inner, "classifications")

	if _, err := r.Resolve(context.Background(), "RY", "ROYAL BANK OF CANADA", "Common Shares"); err == nil {
		t.Fatal("expected an error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestCachingResolver_Invalidate verifies the cached entry is removed.
func TestCachingResolver_Invalidate(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("classifications:RY:ROYAL_BANK_OF_CANADA").SetVal(1)

	r := NewCachingResolver(rdb, time.Hour, &mockResolver{}, "classifications")

	if err := r.Invalidate(context.Background(), "RY", "ROYAL BANK OF CANADA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestCachingResolver_CacheKey verifies spaces and colons are escaped in keys.
func TestCachingResolver_CacheKey(t *testing.T) {
	t.Parallel()

	r := NewCachingResolver(nil, time.Hour, &mockResolver{}, "classifications")

	got := r.cacheKey("BRK:B", "BERKSHIRE HATHAWAY")
	want := "classifications:BRK_B:BERKSHIRE_HATHAWAY"
	if got != want {
		t.Errorf("expected key %q, got %q", want, got)
	}
}
