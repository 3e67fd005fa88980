package catalog

import (
	"github.com/shopspring/decimal"
)

// CreateProductInput captures a new catalog entry.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required,min=2,max=160"`
	Category    *string         `json:"category" validate:"omitempty,max=80"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateProductInput carries partial product updates.
type UpdateProductInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=160"`
	Category    *string          `json:"category" validate:"omitempty,max=80"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// CreatePlotInput captures a new growing area.
type CreatePlotInput struct {
	Name     string `json:"name" validate:"required,min=2,max=160"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}

// UpdatePlotInput carries partial plot updates.
type UpdatePlotInput struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=160"`
	Capacity *int    `json:"capacity" validate:"omitempty,gt=0"`
}
