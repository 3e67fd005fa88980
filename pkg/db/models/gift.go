package models

import (
	"time"

	"github.com/google/uuid"
)

// Gift is a redeemable code issued once every 100 accumulated points. A gift
// consumed by an order is reinstated if that order is cancelled.
type Gift struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Code       string     `gorm:"column:code;uniqueIndex;not null" json:"code"`
	CustomerID uuid.UUID  `gorm:"column:customer_id;type:uuid;not null;index" json:"customer_id"`
	Used       bool       `gorm:"column:used;not null;default:false" json:"used"`
	UsedAt     *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
	OrderID    *uuid.UUID `gorm:"column:order_id;type:uuid" json:"order_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
