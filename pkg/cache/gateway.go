package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/singleflight"
)

var nullPayload = []byte("null")

// Policy holds the expiry applied to found and not-found outcomes.
type Policy struct {
	PositiveTTL time.Duration
	NegativeTTL time.Duration
}

// Fetcher queries the upstream source for one key. A nil result with a nil
// error means the upstream reported no such entity.
type Fetcher[T any] func(ctx context.Context) (*T, error)

// Gateway is a cache-aside lookup in front of an upstream provider. Store and
// upstream failures never reach the caller: they are logged and the lookup
// resolves to not found.
type Gateway[T any] struct {
	name   string
	store  Store
	policy Policy
	group  singleflight.Group
}

func NewGateway[T any](name string, store Store, policy Policy) *Gateway[T] {
	return &Gateway[T]{
		name:   name,
		store:  store,
		policy: policy,
	}
}

// Lookup returns the value for key and whether it was found. A cached
// not-found marker short-circuits the upstream until it expires.
func (g *Gateway[T]) Lookup(ctx context.Context, key string, fetch Fetcher[T]) (*T, bool) {
	if v, cached, ok := g.read(ctx, key); cached {
		return v, ok
	}

	res, _, _ := g.group.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			log.Warnw("upstream lookup failed", "gateway", g.name, "key", key, "error", err)
			v = nil
		}
		g.write(ctx, key, v)
		return v, nil
	})

	v, _ := res.(*T)
	return v, v != nil
}

// read reports cached=false on a miss or any store failure.
func (g *Gateway[T]) read(ctx context.Context, key string) (v *T, cached bool, ok bool) {
	raw, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Warnw("cache read failed", "gateway", g.name, "key", key, "error", err)
		}
		return nil, false, false
	}

	if bytes.Equal(bytes.TrimSpace(raw), nullPayload) {
		return nil, true, false
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warnw("cache entry undecodable", "gateway", g.name, "key", key, "error", err)
		return nil, false, false
	}
	return &out, true, true
}

func (g *Gateway[T]) write(ctx context.Context, key string, v *T) {
	ttl := g.policy.NegativeTTL
	payload := nullPayload
	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			log.Warnw("cache entry unencodable", "gateway", g.name, "key", key, "error", err)
			return
		}
		payload = b
		ttl = g.policy.PositiveTTL
	}

	if err := g.store.Set(ctx, key, payload, ttl); err != nil {
		log.Warnw("cache write failed", "gateway", g.name, "key", key, "error", err)
	}
}
