package stock

import (
	"context"

	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
)

// Ledger applies stock changes and appends the matching audit movement inside
// the caller's transaction. Every quantity mutation in the system goes through
// Apply so the movement trail stays complete.
type Ledger struct {
	repo Repository
}

// NewLedger builds a ledger over the provided repository.
func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Apply adjusts the (product, plot) quantity by input.Delta and records the
// movement. Decrements that would push the quantity below zero fail with a
// conflict and leave nothing written.
func (l *Ledger) Apply(ctx context.Context, tx *gorm.DB, input AdjustInput) (*models.StockEntry, error) {
	if input.Delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock delta cannot be zero")
	}
	if !input.Reason.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid movement reason")
	}

	repo := l.repo.WithTx(tx)
	entry, err := repo.FindEntry(ctx, input.ProductID, input.PlotID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock entry")
		}
		// Unknown pairs start at zero, so a decrement falls through to the
		// same insufficiency conflict as any other overdraw.
		entry, err = repo.CreateEntry(ctx, &models.StockEntry{
			ProductID: input.ProductID,
			PlotID:    input.PlotID,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stock entry")
		}
	}

	if err := repo.AdjustQuantity(ctx, entry.ID, input.Delta); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for requested quantity")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust stock quantity")
	}
	entry.Quantity += input.Delta

	movementType := enums.MovementTypeIn
	quantity := input.Delta
	if input.Delta < 0 {
		movementType = enums.MovementTypeOut
		quantity = -input.Delta
	}

	movement := &models.StockMovement{
		StockEntryID: entry.ID,
		Type:         movementType,
		Quantity:     quantity,
		Reason:       input.Reason,
		OrderID:      input.OrderID,
	}
	if err := repo.CreateMovement(ctx, movement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record stock movement")
	}

	return entry, nil
}
