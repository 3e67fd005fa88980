package models

import (
	"time"

	"github.com/google/uuid"
)

// StockEntry tracks quantity on hand per (product, plot) pair. The quantity is
// mutated only through the stock ledger's adjust operation and never goes
// negative.
type StockEntry struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_stock_product_plot" json:"product_id"`
	PlotID    uuid.UUID `gorm:"column:plot_id;type:uuid;not null;uniqueIndex:idx_stock_product_plot" json:"plot_id"`
	Quantity  int       `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Plot      *Plot     `gorm:"foreignKey:PlotID" json:"plot,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
