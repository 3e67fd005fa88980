package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a nursery catalog entry (seedling, sapling, etc).
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Category    *string         `gorm:"column:category" json:"category,omitempty"`
	Description *string         `gorm:"column:description" json:"description,omitempty"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	Stocks      []StockEntry    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"stocks,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
