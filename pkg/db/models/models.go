package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// All returns every model in dependency order, for schema automigration.
func All() []any {
	return []any{
		&Product{},
		&Plot{},
		&StockEntry{},
		&StockMovement{},
		&Customer{},
		&Gift{},
		&Medal{},
		&Order{},
		&OrderLineItem{},
		&LineItemAllocation{},
		&User{},
		&QRScan{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (m *Product) BeforeCreate(*gorm.DB) error            { ensureID(&m.ID); return nil }
func (m *Plot) BeforeCreate(*gorm.DB) error               { ensureID(&m.ID); return nil }
func (m *StockEntry) BeforeCreate(*gorm.DB) error         { ensureID(&m.ID); return nil }
func (m *StockMovement) BeforeCreate(*gorm.DB) error      { ensureID(&m.ID); return nil }
func (m *Customer) BeforeCreate(*gorm.DB) error           { ensureID(&m.ID); return nil }
func (m *Gift) BeforeCreate(*gorm.DB) error               { ensureID(&m.ID); return nil }
func (m *Medal) BeforeCreate(*gorm.DB) error              { ensureID(&m.ID); return nil }
func (m *Order) BeforeCreate(*gorm.DB) error              { ensureID(&m.ID); return nil }
func (m *OrderLineItem) BeforeCreate(*gorm.DB) error      { ensureID(&m.ID); return nil }
func (m *LineItemAllocation) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
func (m *User) BeforeCreate(*gorm.DB) error               { ensureID(&m.ID); return nil }
func (m *QRScan) BeforeCreate(*gorm.DB) error             { ensureID(&m.ID); return nil }
