package controllers

import (
	"net/http"

	"github.com/sharkleaf/backend/api/middleware"
	"github.com/sharkleaf/backend/api/responses"
	"github.com/sharkleaf/backend/internal/customers"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
	"github.com/sharkleaf/backend/pkg/logger"
)

// Me returns the session customer's loyalty profile.
func Me(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "customer account required"))
			return
		}

		profile, err := svc.Profile(r.Context(), *customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// CustomerList serves the admin roster with points and gift counts.
func CustomerList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
