package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem snapshots the catalog price at order time; the subtotal stays
// immutable even if the product price changes later.
type OrderLineItem struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID            `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID            `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Quantity    int                  `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice   decimal.Decimal      `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal      `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	Product     *Product             `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Allocations []LineItemAllocation `gorm:"foreignKey:LineItemID;constraint:OnDelete:CASCADE" json:"allocations,omitempty"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
