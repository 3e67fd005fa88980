package models

import (
	"github.com/google/uuid"
)

// LineItemAllocation records how much of a line item was drawn from a specific
// plot. The allocation quantities for a line item always sum to the line
// item's quantity.
type LineItemAllocation struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	LineItemID uuid.UUID `gorm:"column:line_item_id;type:uuid;not null;index" json:"line_item_id"`
	PlotID     uuid.UUID `gorm:"column:plot_id;type:uuid;not null" json:"plot_id"`
	Quantity   int       `gorm:"column:quantity;not null" json:"quantity"`
	Plot       *Plot     `gorm:"foreignKey:PlotID" json:"plot,omitempty"`
}
