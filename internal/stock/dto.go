package stock

import (
	"github.com/google/uuid"

	"github.com/sharkleaf/backend/pkg/enums"
)

// AdjustInput captures a single requested stock change.
type AdjustInput struct {
	ProductID uuid.UUID
	PlotID    uuid.UUID
	Delta     int
	Reason    enums.MovementReason
	OrderID   *uuid.UUID
}

// EntryFilter narrows stock entry listings.
type EntryFilter struct {
	ProductID *uuid.UUID
	PlotID    *uuid.UUID
}

// MovementFilter narrows movement listings.
type MovementFilter struct {
	StockEntryID *uuid.UUID
	OrderID      *uuid.UUID
	Limit        int
}
