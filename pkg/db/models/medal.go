package models

import (
	"time"

	"github.com/google/uuid"
)

// Medal is a static achievement definition seeded by migrations; the core
// never creates medals at runtime.
type Medal struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"column:description;not null" json:"description"`
	Icon        string    `gorm:"column:icon;not null" json:"icon"`
	Condition   string    `gorm:"column:condition_code;not null" json:"condition"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
