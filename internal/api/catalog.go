package api

import (
	"net/http"
	"net/url"

	"wholesale-be/internal/catalog"

	"github.com/go-chi/chi/v5"
)

// listProductsHandler serves the catalog page:
// GET /api/v1/products?brand=&category=&status=&minPrice=&maxPrice=&q=&sort=
func (h *handler) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	spec, err := catalog.DecodeValues(r.URL.Query())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.catalog.Browse(r.Context(), spec, catalog.Scope{})
	if err != nil {
		serviceError(w, r, err)
		return
	}

	_ = jsonResponse(w, http.StatusOK, res)
}

func (h *handler) productFacetsHandler(w http.ResponseWriter, r *http.Request) {
	facets, err := h.catalog.Facets(r.Context(), catalog.Scope{})
	if err != nil {
		serviceError(w, r, err)
		return
	}

	_ = jsonResponse(w, http.StatusOK, facets)
}

func (h *handler) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetCategories(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}

	_ = jsonResponse(w, http.StatusOK, categories)
}

type categoryPage struct {
	*catalog.Result
	Category string          `json:"category"`
	Facets   *catalog.Facets `json:"facets"`
}

// categoryProductsHandler serves a category page. The category filter
// parameter selects subcategories here.
func (h *handler) categoryProductsHandler(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	spec, err := catalog.DecodeValues(r.URL.Query())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	c, err := h.categories.GetCategory(r.Context(), name)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	scope := catalog.Scope{Category: c.Name}
	res, err := h.catalog.Browse(r.Context(), spec, scope)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	facets, err := h.catalog.Facets(r.Context(), scope)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	_ = jsonResponse(w, http.StatusOK, categoryPage{Result: res, Category: c.Name, Facets: facets})
}
