package catalog

import (
	"context"
	"strings"
	"time"

	"wholesale-be/internal/logger"
	"wholesale-be/internal/product"

	"go.uber.org/zap"
)

// Scope picks the page a query runs on. The zero Scope is the whole catalog,
// classified by category. A Scope with Category set is that category's page,
// classified by subcategory.
type Scope struct {
	Category string
}

func (s Scope) engine() Engine {
	if s.Category != "" {
		return NewEngine(BySubcategory)
	}
	return NewEngine(ByCategory)
}

func (s Scope) apply(products []product.Product) []product.Product {
	if s.Category == "" {
		return products
	}
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, s.Category) {
			out = append(out, p)
		}
	}
	return out
}

type Result struct {
	Items []product.Product `json:"items"`
	Count int               `json:"count"`
	Total int               `json:"total"`
	Query string            `json:"query"`
}

type Service interface {
	Browse(ctx context.Context, spec FilterSpec, scope Scope) (*Result, error)
	Facets(ctx context.Context, scope Scope) (*Facets, error)
}

type service struct {
	source product.Source
}

func NewService(source product.Source) Service {
	return &service{source: source}
}

func (s *service) Browse(ctx context.Context, spec FilterSpec, scope Scope) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Browse"),
		zap.String("scope", scope.Category),
	)
	start := time.Now()

	if err := spec.Price.Validate(); err != nil {
		log.Warn("price range matches nothing", zap.Error(err))
	}

	products, err := s.source.List(ctx)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return nil, err
	}

	inScope := scope.apply(products)
	items := scope.engine().Query(inScope, spec)

	log.Info("browse success",
		zap.Int("total", len(inScope)),
		zap.Int("count", len(items)),
		zap.String("sort", string(spec.Sort)),
		zap.Duration("duration", time.Since(start)),
	)

	return &Result{
		Items: items,
		Count: len(items),
		Total: len(inScope),
		Query: EncodeValues(spec).Encode(),
	}, nil
}

func (s *service) Facets(ctx context.Context, scope Scope) (*Facets, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Facets"),
		zap.String("scope", scope.Category),
	)

	products, err := s.source.List(ctx)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return nil, err
	}

	f := scope.engine().Facets(scope.apply(products))
	log.Debug("facets computed", zap.Int("brands", len(f.Brands)))
	return &f, nil
}
