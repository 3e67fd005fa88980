package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sharkleaf/backend/api/responses"
	"github.com/sharkleaf/backend/internal/orders"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
	"github.com/sharkleaf/backend/pkg/logger"
)

// TrackingByTicket serves the public order-tracking page. Tickets are short
// uppercase codes printed on the QR artifact.
func TrackingByTicket(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticket := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "ticket")))
		if ticket == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "ticket required"))
			return
		}

		order, err := svc.GetByTicket(r.Context(), ticket)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// Monitor feeds the production display board with active orders.
func Monitor(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.Monitor(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
