package orders

import (
	"github.com/google/uuid"

	"github.com/sharkleaf/backend/pkg/enums"
)

// AllocationInput names the plot a slice of a line item is drawn from.
type AllocationInput struct {
	PlotID   uuid.UUID `json:"plot_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderItemInput is one requested product with its plot breakdown.
type CreateOrderItemInput struct {
	ProductID   uuid.UUID         `json:"product_id" validate:"required"`
	Quantity    int               `json:"quantity" validate:"required,gt=0"`
	Allocations []AllocationInput `json:"allocations" validate:"required,min=1,dive"`
}

// CreateOrderInput captures everything needed to accept an order.
type CreateOrderInput struct {
	Items           []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
	DiscountPercent float64                `json:"discount_percent" validate:"gte=0,lte=100"`
	GiftCode        *string                `json:"gift_code" validate:"omitempty,min=4"`
}

// MonitorRow is one line on the production display board.
type MonitorRow struct {
	Ticket       string            `json:"ticket"`
	Status       enums.OrderStatus `json:"status"`
	StatusLabel  string            `json:"status_label"`
	CustomerName *string           `json:"customer_name,omitempty"`
	Items        []string          `json:"items"`
}
