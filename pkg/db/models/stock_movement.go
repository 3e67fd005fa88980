package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sharkleaf/backend/pkg/enums"
)

// StockMovement is the append-only audit record for every stock change.
// Rows are never updated or deleted.
type StockMovement struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StockEntryID uuid.UUID            `gorm:"column:stock_entry_id;type:uuid;not null;index" json:"stock_entry_id"`
	Type         enums.MovementType   `gorm:"column:type;not null" json:"type"`
	Quantity     int                  `gorm:"column:quantity;not null" json:"quantity"`
	Reason       enums.MovementReason `gorm:"column:reason;not null" json:"reason"`
	OrderID      *uuid.UUID           `gorm:"column:order_id;type:uuid;index" json:"order_id,omitempty"`
	StockEntry   *StockEntry          `gorm:"foreignKey:StockEntryID" json:"stock_entry,omitempty"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
