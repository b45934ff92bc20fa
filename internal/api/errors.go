package api

import (
	"errors"
	"net/http"

	"wholesale-be/internal/cart"
	"wholesale-be/internal/catalog"
	"wholesale-be/internal/category"
	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromCtx(r.Context()).Warn("bad request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	_ = writeJSONError(w, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	_ = writeJSONError(w, http.StatusNotFound, err.Error())
}

func internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromCtx(r.Context()).Error("internal error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	_ = writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

// serviceError maps domain sentinels to responses.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, category.ErrCategoryNotFound):
		notFoundResponse(w, r, err)
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidLine),
		errors.Is(err, catalog.ErrInvalidFilter):
		badRequestResponse(w, r, err)
	default:
		internalServerError(w, r, err)
	}
}
