package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sharkleaf/backend/pkg/enums"
)

// User is an authentication principal. Customer accounts carry a link to
// their loyalty profile; admin accounts do not.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.UserRole `gorm:"column:role;not null" json:"role"`
	CustomerID   *uuid.UUID     `gorm:"column:customer_id;type:uuid" json:"customer_id,omitempty"`
	Customer     *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
