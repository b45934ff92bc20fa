package api

import (
	"errors"
	"net/http"

	"wholesale-be/internal/cart"
	"wholesale-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=128"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1,max=100000"`
}

// updateCartItemRequest: a quantity of zero or less removes the line.
type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=100000"`
}

type cartResponse struct {
	Lines  []cart.Line        `json:"lines"`
	Totals cart.DisplayTotals `json:"totals"`
}

func newCartResponse(v *cart.View) cartResponse {
	lines := v.Cart.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartResponse{Lines: lines, Totals: v.Totals.Display()}
}

var errNoSession = errors.New("request has no cart session")

func session(r *http.Request) (string, error) {
	s, ok := middleware.SessionFrom(r.Context())
	if !ok {
		return "", errNoSession
	}
	return s, nil
}

func (h *handler) respondCart(w http.ResponseWriter, r *http.Request, status int, v *cart.View, err error) {
	if err != nil {
		serviceError(w, r, err)
		return
	}
	_ = jsonResponse(w, status, newCartResponse(v))
}

func (h *handler) getCartHandler(w http.ResponseWriter, r *http.Request) {
	s, err := session(r)
	if err != nil {
		internalServerError(w, r, err)
		return
	}

	v, err := h.cart.Get(r.Context(), s)
	h.respondCart(w, r, http.StatusOK, v, err)
}

// addCartItemHandler: POST /api/v1/cart/items {"productId": "...", "quantity": 6}
// Without a quantity the product's minimum order is added.
func (h *handler) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	s, err := session(r)
	if err != nil {
		internalServerError(w, r, err)
		return
	}

	var req addCartItemRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	v, err := h.cart.AddItem(r.Context(), s, req.ProductID, req.Quantity)
	h.respondCart(w, r, http.StatusCreated, v, err)
}

func (h *handler) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	s, err := session(r)
	if err != nil {
		internalServerError(w, r, err)
		return
	}

	var req updateCartItemRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	v, err := h.cart.UpdateQuantity(r.Context(), s, chi.URLParam(r, "productID"), *req.Quantity)
	h.respondCart(w, r, http.StatusOK, v, err)
}

func (h *handler) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	s, err := session(r)
	if err != nil {
		internalServerError(w, r, err)
		return
	}

	v, err := h.cart.RemoveItem(r.Context(), s, chi.URLParam(r, "productID"))
	h.respondCart(w, r, http.StatusOK, v, err)
}

func (h *handler) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	s, err := session(r)
	if err != nil {
		internalServerError(w, r, err)
		return
	}

	v, err := h.cart.Clear(r.Context(), s)
	h.respondCart(w, r, http.StatusOK, v, err)
}
