package models

import (
	"time"

	"github.com/google/uuid"
)

// QRScan records a tracking-page scan of an order's QR code.
type QRScan struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	CustomerID *uuid.UUID `gorm:"column:customer_id;type:uuid" json:"customer_id,omitempty"`
	Name       string     `gorm:"column:name;not null" json:"name"`
	Location   *string    `gorm:"column:location" json:"location,omitempty"`
	IP         string     `gorm:"column:ip;not null" json:"ip"`
	UserAgent  string     `gorm:"column:user_agent;not null" json:"user_agent"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
