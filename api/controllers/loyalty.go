package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sharkleaf/backend/api/middleware"
	"github.com/sharkleaf/backend/api/responses"
	"github.com/sharkleaf/backend/api/validators"
	"github.com/sharkleaf/backend/internal/loyalty"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
	"github.com/sharkleaf/backend/pkg/logger"
)

type redeemRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

// LoyaltyRedeem claims the points of a READY order for the session customer.
func LoyaltyRedeem(svc loyalty.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "customer account required"))
			return
		}

		var body redeemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Redeem(r.Context(), *customerID, body.OrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GiftGenerate mints a gift for each unclaimed block of 100 points.
func GiftGenerate(svc loyalty.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "customer account required"))
			return
		}

		gift, err := svc.GenerateGift(r.Context(), *customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, gift)
	}
}

type giftValidateRequest struct {
	Code string `json:"code" validate:"required,min=4"`
}

// GiftValidate answers whether a gift code can still be applied to an order.
// Public because staff check codes at the counter without a session.
func GiftValidate(svc loyalty.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body giftValidateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		validation, err := svc.ValidateGift(r.Context(), body.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, validation)
	}
}
