package models

import (
	"time"

	"github.com/google/uuid"
)

// Plot is a physical growing area with finite capacity.
type Plot struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string       `gorm:"column:name;not null" json:"name"`
	Capacity  int          `gorm:"column:capacity;not null" json:"capacity"`
	Stocks    []StockEntry `gorm:"foreignKey:PlotID;constraint:OnDelete:CASCADE" json:"stocks,omitempty"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
