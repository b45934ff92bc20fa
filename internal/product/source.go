package product

import (
	"context"
	_ "embed"
	"slices"
	"sync"
	"time"

	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

// Source yields the full product collection a page browses.
type Source interface {
	List(ctx context.Context) ([]Product, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Product, error)

func (f SourceFunc) List(ctx context.Context) ([]Product, error) { return f(ctx) }

//go:embed static/products.json
var staticCatalog []byte

type staticSource struct {
	products []Product
}

// StaticSource serves the product list bundled with the binary.
func StaticSource() Source {
	products, rejected, err := DecodeCatalog(staticCatalog)
	if err != nil {
		panic("product: bundled catalog is invalid: " + err.Error())
	}
	if len(rejected) > 0 {
		logger.L().Warn("bundled catalog has rejected entries", zap.Int("rejected", len(rejected)))
	}
	return &staticSource{products: products}
}

func (s *staticSource) List(ctx context.Context) ([]Product, error) {
	return slices.Clone(s.products), nil
}

// fallbackRetry is how long a failed primary is skipped before it is tried again.
const fallbackRetry = 30 * time.Second

type fallbackSource struct {
	primary  Source
	fallback Source
	retry    time.Duration
	now      func() time.Time

	mu        sync.Mutex
	downUntil time.Time
}

// WithFallback serves fallback whenever primary fails. After a failure the
// primary is left alone for a short while so callers are not held up by it.
func WithFallback(primary, fallback Source) Source {
	return &fallbackSource{primary: primary, fallback: fallback, retry: fallbackRetry, now: time.Now}
}

func (s *fallbackSource) List(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	down := s.now().Before(s.downUntil)
	s.mu.Unlock()
	if down {
		return s.fallback.List(ctx)
	}

	products, err := s.primary.List(ctx)
	if err == nil {
		return products, nil
	}

	s.mu.Lock()
	s.downUntil = s.now().Add(s.retry)
	s.mu.Unlock()

	logger.FromCtx(ctx).Warn("catalog source unavailable, serving fallback",
		zap.String("layer", "source"),
		zap.Duration("retry_in", s.retry),
		zap.Error(err),
	)
	return s.fallback.List(ctx)
}

// CachedSource memoizes a source for a fixed TTL.
type CachedSource struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	products  []Product
	fetchedAt time.Time
	valid     bool
}

func WithCache(src Source, ttl time.Duration) *CachedSource {
	return &CachedSource{src: src, ttl: ttl, now: time.Now}
}

func (c *CachedSource) List(ctx context.Context) ([]Product, error) {
	c.mu.RLock()
	if c.valid && c.now().Sub(c.fetchedAt) < c.ttl {
		products := slices.Clone(c.products)
		c.mu.RUnlock()
		return products, nil
	}
	c.mu.RUnlock()

	products, err := c.src.List(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.products = products
	c.fetchedAt = c.now()
	c.valid = true
	c.mu.Unlock()

	return slices.Clone(products), nil
}

// Invalidate drops the cached collection so the next List refetches.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.products = nil
	c.valid = false
	c.mu.Unlock()
}
