package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharkleaf/backend/pkg/enums"
)

// Order is created atomically with its line items and plot allocations. The
// ticket is the public identifier printed on QR artifacts; the customer link
// is only set when loyalty points are redeemed.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Ticket          string            `gorm:"column:ticket;uniqueIndex;not null" json:"ticket"`
	QRRef           string            `gorm:"column:qr_ref;not null" json:"qr_ref"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'RECEIVED'" json:"status"`
	GrossAmount     decimal.Decimal   `gorm:"column:gross_amount;type:numeric(12,2);not null" json:"gross_amount"`
	DiscountPercent float64           `gorm:"column:discount_percent;not null;default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal   `gorm:"column:discount_amount;type:numeric(12,2);not null" json:"discount_amount"`
	NetAmount       decimal.Decimal   `gorm:"column:net_amount;type:numeric(12,2);not null" json:"net_amount"`
	GiftCode        *string           `gorm:"column:gift_code" json:"gift_code,omitempty"`
	PointsGenerated int               `gorm:"column:points_generated;not null;default:0" json:"points_generated"`
	Redeemed        bool              `gorm:"column:redeemed;not null;default:false" json:"redeemed"`
	CustomerID      *uuid.UUID        `gorm:"column:customer_id;type:uuid;index" json:"customer_id,omitempty"`
	Customer        *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items           []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
