package controllers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/sharkleaf/backend/api/responses"
	"github.com/sharkleaf/backend/internal/trail"
	"github.com/sharkleaf/backend/pkg/logger"
)

// TrailLookup returns educational species info for a product name. The
// answer degrades gracefully when the model is unavailable.
func TrailLookup(svc trail.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "productName")
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}

		result, err := svc.Lookup(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
