package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"wholesale-be/internal/api"
	"wholesale-be/internal/cart"
	"wholesale-be/internal/catalog"
	"wholesale-be/internal/category"
	"wholesale-be/internal/config"
	"wholesale-be/internal/db"
	"wholesale-be/internal/logger"
	"wholesale-be/internal/middleware"
	"wholesale-be/internal/product"
	"wholesale-be/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Swapped in tests.
var (
	initDBFunc       = db.InitDB
	connectRedisFunc = storage.Connect
	startServerFunc  = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, cancel := withSignals(context.Background())
	defer cancel()

	var database *sql.DB
	if cfg.NeedsDB() {
		database = initDBFunc(cfg)
		defer database.Close()
	}

	src, err := newCatalogSource(cfg, database)
	if err != nil {
		return err
	}

	kv, closeKV, err := newCartStorage(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer closeKV()

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Cleanup(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, src, kv, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	logger.L().Info("server starting",
		zap.String("addr", srv.Addr),
		zap.String("catalog_source", cfg.CatalogSource),
		zap.String("cart_backend", cfg.CartBackend),
	)
	return startServerFunc(ctx, srv)
}

// newServer wires services over src and kv into the HTTP router.
func newServer(cfg *config.Config, src product.Source, kv storage.KV, limiter *middleware.RateLimiter) http.Handler {
	store := cart.NewStore(kv)
	store.Subscribe(func(ctx context.Context, session string, c cart.Cart) {
		logger.FromCtx(ctx).Debug("cart changed",
			zap.String("key", cart.Key(session)),
			zap.Int("lines", c.Len()),
		)
	})

	pricing := cart.Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
	}

	return api.NewRouter(api.Services{
		Catalog:    catalog.NewService(src),
		Categories: category.NewService(src),
		Cart:       cart.NewService(store, src, pricing),
	}, api.Options{
		Secret:         []byte(cfg.SecretKey),
		SecureCookies:  cfg.IsProduction(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Limiter:        limiter,
	})
}

// newCatalogSource picks the live source and falls back to the bundled list
// when it fails. Live results are cached for CATALOG_CACHE_TTL.
func newCatalogSource(cfg *config.Config, database *sql.DB) (product.Source, error) {
	static := product.StaticSource()

	var live product.Source
	switch cfg.CatalogSource {
	case config.CatalogSourceStatic:
		return static, nil
	case config.CatalogSourceHTTP:
		live = product.NewHTTPSource(cfg.CatalogURL, cfg.CatalogTimeout)
	case config.CatalogSourcePostgres:
		if database == nil {
			return nil, errors.New("postgres catalog source needs a database")
		}
		live = product.NewRepository(database)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}

	if cfg.CatalogCacheTTL > 0 {
		live = product.WithCache(live, cfg.CatalogCacheTTL)
	}
	return product.WithFallback(live, static), nil
}

func newCartStorage(ctx context.Context, cfg *config.Config, database *sql.DB) (storage.KV, func(), error) {
	noop := func() {}

	switch cfg.CartBackend {
	case config.CartBackendMemory:
		return storage.NewMemory(), noop, nil
	case config.CartBackendPostgres:
		if database == nil {
			return nil, noop, errors.New("postgres cart backend needs a database")
		}
		return storage.NewPostgres(database, cfg.CartTTL), noop, nil
	case config.CartBackendRedis:
		client, err := connectRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedis(client, cfg.CartTTL), func() { closeRedis(client) }, nil
	default:
		return nil, noop, fmt.Errorf("unknown cart backend %q", cfg.CartBackend)
	}
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logger.L().Warn("redis close failed", zap.Error(err))
	}
}

// startServer serves until ctx is cancelled, then drains connections.
func startServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.L().Info("server stopped")
	return nil
}
