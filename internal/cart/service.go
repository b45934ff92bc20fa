package cart

import (
	"context"
	"time"

	"wholesale-be/internal/logger"
	"wholesale-be/internal/product"

	"go.uber.org/zap"
)

// View is a cart together with its totals under the service's pricing.
type View struct {
	Cart   Cart
	Totals Totals
}

// Service defines the cart operations for a session.
type Service interface {
	Get(ctx context.Context, session string) (*View, error)
	AddItem(ctx context.Context, session, productID string, quantity *int) (*View, error)
	UpdateQuantity(ctx context.Context, session, productID string, quantity int) (*View, error)
	RemoveItem(ctx context.Context, session, productID string) (*View, error)
	Clear(ctx context.Context, session string) (*View, error)
}

// service implements the Service interface
type service struct {
	store    *Store
	products product.Source
	pricing  Pricing
}

// NewService creates a new cart service
func NewService(store *Store, products product.Source, pricing Pricing) Service {
	return &service{store: store, products: products, pricing: pricing}
}

func (s *service) view(c Cart) *View {
	return &View{Cart: c, Totals: c.Totals(s.pricing)}
}

func (s *service) Get(ctx context.Context, session string) (*View, error) {
	c, err := s.store.Get(ctx, session)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load cart",
			zap.String("layer", "service"),
			zap.String("method", "GetCart"),
			zap.Error(err),
		)
		return nil, err
	}
	return s.view(c), nil
}

// AddItem adds a catalog product to the cart. A nil quantity means the
// product's minimum order.
func (s *service) AddItem(ctx context.Context, session, productID string, quantity *int) (*View, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("product_id", productID),
	)
	start := time.Now()

	products, err := s.products.List(ctx)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return nil, err
	}

	p, ok := product.FindByID(products, productID)
	if !ok {
		log.Warn("product not found")
		return nil, ErrProductNotFound
	}

	line := LineFromProduct(p)
	qty := line.Quantity
	if quantity != nil {
		qty = *quantity
	}

	c, err := s.store.Update(ctx, session, func(c Cart) (Cart, error) {
		return c.AddItem(line, qty)
	})
	if err != nil {
		log.Error("add to cart failed", zap.Int("quantity", qty), zap.Error(err))
		return nil, err
	}

	log.Info("add to cart success",
		zap.Int("quantity", qty),
		zap.Int("lines", c.Len()),
		zap.Duration("duration", time.Since(start)),
	)
	return s.view(c), nil
}

func (s *service) UpdateQuantity(ctx context.Context, session, productID string, quantity int) (*View, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateQuantity"),
		zap.String("product_id", productID),
	)

	c, err := s.store.Update(ctx, session, func(c Cart) (Cart, error) {
		return c.UpdateQuantity(productID, quantity), nil
	})
	if err != nil {
		log.Error("update cart failed", zap.Error(err))
		return nil, err
	}

	log.Info("update cart success", zap.Int("quantity", quantity))
	return s.view(c), nil
}

func (s *service) RemoveItem(ctx context.Context, session, productID string) (*View, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RemoveItem"),
		zap.String("product_id", productID),
	)

	c, err := s.store.Update(ctx, session, func(c Cart) (Cart, error) {
		return c.RemoveItem(productID), nil
	})
	if err != nil {
		log.Error("remove from cart failed", zap.Error(err))
		return nil, err
	}

	log.Info("remove from cart success")
	return s.view(c), nil
}

func (s *service) Clear(ctx context.Context, session string) (*View, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ClearCart"),
	)

	c, err := s.store.Update(ctx, session, func(c Cart) (Cart, error) {
		return c.Clear(), nil
	})
	if err != nil {
		log.Error("clear cart failed", zap.Error(err))
		return nil, err
	}

	log.Info("clear cart success")
	return s.view(c), nil
}
