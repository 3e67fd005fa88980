package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sharkleaf/backend/api/responses"
	"github.com/sharkleaf/backend/api/validators"
	"github.com/sharkleaf/backend/internal/stock"
	"github.com/sharkleaf/backend/pkg/enums"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
	"github.com/sharkleaf/backend/pkg/logger"
)

type stockAdjustRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	PlotID    uuid.UUID `json:"plot_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Type      string    `json:"type" validate:"required,oneof=IN OUT"`
}

// StockAdjust records a manual IN or OUT movement against a plot.
func StockAdjust(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body stockAdjustRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		movementType, err := enums.ParseMovementType(body.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid movement type"))
			return
		}

		delta := body.Quantity
		if movementType == enums.MovementTypeOut {
			delta = -delta
		}

		entry, err := svc.ManualAdjust(r.Context(), stock.AdjustInput{
			ProductID: body.ProductID,
			PlotID:    body.PlotID,
			Delta:     delta,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// The adjustment updates a running quantity rather than creating a
		// resource, so the route answers 200.
		responses.WriteSuccess(w, entry)
	}
}

func StockList(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := optionalUUIDQuery(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		plotID, err := optionalUUIDQuery(r, "plot_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.ListEntries(r.Context(), stock.EntryFilter{ProductID: productID, PlotID: plotID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// StockMovements returns the audit trail, newest first.
func StockMovements(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := optionalUUIDQuery(r, "stock_entry_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := optionalUUIDQuery(r, "order_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		movements, err := svc.ListMovements(r.Context(), stock.MovementFilter{
			StockEntryID: entryID,
			OrderID:      orderID,
			Limit:        limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, movements)
	}
}
