package category

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"wholesale-be/internal/logger"
	"wholesale-be/internal/product"

	"go.uber.org/zap"
)

// Service exposes the category tree of the catalog.
type Service interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, name string) (*Category, error)
}

// service implements the Service interface
type service struct {
	source product.Source
}

// NewService creates a category service deriving its tree from source
func NewService(source product.Source) Service {
	return &service{source: source}
}

// GetCategories retrieves all categories with their subcategories, sorted by name
func (s *service) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	products, err := s.source.List(ctx)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return nil, err
	}

	categories := Build(products)
	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

// GetCategory finds a category by name, ignoring case
func (s *service) GetCategory(ctx context.Context, name string) (*Category, error) {
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}

	logger.FromCtx(ctx).Info("category not found",
		zap.String("layer", "service"),
		zap.String("method", "GetCategory"),
		zap.String("name", name),
	)
	return nil, ErrCategoryNotFound
}

// Build groups products into a category tree. Products without a category
// are skipped; products without a subcategory count toward the category only.
func Build(products []product.Product) []*Category {
	byName := map[string]*Category{}
	subs := map[string]map[string]*Subcategory{}

	for _, p := range products {
		if p.Category == "" {
			continue
		}

		c, ok := byName[p.Category]
		if !ok {
			c = &Category{Name: p.Category, Subcategories: []*Subcategory{}}
			byName[p.Category] = c
			subs[p.Category] = map[string]*Subcategory{}
		}
		c.ProductCount++

		if p.Subcategory == "" {
			continue
		}
		sub, ok := subs[p.Category][p.Subcategory]
		if !ok {
			sub = &Subcategory{Name: p.Subcategory}
			subs[p.Category][p.Subcategory] = sub
			c.Subcategories = append(c.Subcategories, sub)
		}
		sub.ProductCount++
	}

	categories := make([]*Category, 0, len(byName))
	for _, c := range byName {
		slices.SortFunc(c.Subcategories, func(a, b *Subcategory) int { return cmp.Compare(a.Name, b.Name) })
		categories = append(categories, c)
	}
	slices.SortFunc(categories, func(a, b *Category) int { return cmp.Compare(a.Name, b.Name) })
	return categories
}
