package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer accumulates loyalty points through order redemptions. TotalPoints
// is only moved by redemption and cancellation reversal, inside their owning
// transactions.
type Customer struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	Email       string     `gorm:"column:email;uniqueIndex;not null" json:"email"`
	TotalPoints int        `gorm:"column:total_points;not null;default:0" json:"total_points"`
	Gifts       []Gift     `gorm:"foreignKey:CustomerID" json:"gifts,omitempty"`
	Medals      []Medal    `gorm:"many2many:customer_medals" json:"medals,omitempty"`
	Orders      []Order    `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
