package api

import (
	"net/http"
	"time"

	"wholesale-be/internal/cart"
	"wholesale-be/internal/catalog"
	"wholesale-be/internal/category"
	"wholesale-be/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Services struct {
	Catalog    catalog.Service
	Categories category.Service
	Cart       cart.Service
}

type Options struct {
	Secret         []byte
	SecureCookies  bool
	AllowedOrigins []string
	Limiter        *middleware.RateLimiter
	Timeout        time.Duration
}

type handler struct {
	catalog    catalog.Service
	categories category.Service
	cart       cart.Service
}

// NewRouter mounts the REST API. Catalog routes are anonymous; cart routes
// run behind the session middleware so each caller gets their own cart.
func NewRouter(svc Services, opts Options) http.Handler {
	h := &handler{
		catalog:    svc.Catalog,
		categories: svc.Categories,
		cart:       svc.Cart,
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	limit := func(next http.Handler) http.Handler { return next }
	if opts.Limiter != nil {
		limit = opts.Limiter.Middleware
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(chimw.Timeout(opts.Timeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSONError(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limit)

			r.Get("/products", h.listProductsHandler)
			r.Get("/products/facets", h.productFacetsHandler)
			r.Get("/categories", h.listCategoriesHandler)
			r.Get("/categories/{category}/products", h.categoryProductsHandler)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(opts.Secret, opts.SecureCookies))
			r.Use(limit)

			r.Get("/", h.getCartHandler)
			r.Delete("/", h.clearCartHandler)
			r.Post("/items", h.addCartItemHandler)
			r.Put("/items/{productID}", h.updateCartItemHandler)
			r.Delete("/items/{productID}", h.removeCartItemHandler)
		})
	})

	return r
}
