package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sharkleaf/backend/api/middleware"
	"github.com/sharkleaf/backend/api/responses"
	"github.com/sharkleaf/backend/api/validators"
	"github.com/sharkleaf/backend/internal/scans"
	"github.com/sharkleaf/backend/pkg/logger"
)

type scanRequest struct {
	OrderID  uuid.UUID `json:"order_id" validate:"required"`
	Location *string   `json:"location" validate:"omitempty,max=160"`
}

// ScanCreate records a tracking-page scan. Works for anonymous visitors; a
// logged-in customer is attributed via the optional session.
func ScanCreate(svc scans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body scanRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := scans.RecordInput{
			OrderID:    body.OrderID,
			Location:   body.Location,
			CustomerID: middleware.CustomerIDFromContext(r.Context()),
			IP:         middleware.ClientIP(r),
			UserAgent:  validators.SanitizeString(r.UserAgent(), 512),
		}
		scan, err := svc.Record(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, scan)
	}
}
