package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
)

// Repository exposes stock persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateEntry(ctx context.Context, entry *models.StockEntry) (*models.StockEntry, error)
	FindEntry(ctx context.Context, productID, plotID uuid.UUID) (*models.StockEntry, error)
	ListEntries(ctx context.Context, filter EntryFilter) ([]models.StockEntry, error)
	SumPlotQuantity(ctx context.Context, plotID uuid.UUID) (int, error)

	// AdjustQuantity applies delta with a non-negativity guard at write time.
	// It reports gorm.ErrRecordNotFound when the guard rejects the update.
	AdjustQuantity(ctx context.Context, entryID uuid.UUID, delta int) error

	CreateMovement(ctx context.Context, movement *models.StockMovement) error
	ListMovements(ctx context.Context, filter MovementFilter) ([]models.StockMovement, error)
}
