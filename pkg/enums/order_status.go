package enums

import "fmt"

// OrderStatus tracks where an order sits in the fulfillment pipeline.
type OrderStatus string

const (
	OrderStatusReceived     OrderStatus = "RECEIVED"
	OrderStatusInProduction OrderStatus = "IN_PRODUCTION"
	OrderStatusPackaging    OrderStatus = "PACKAGING"
	OrderStatusReady        OrderStatus = "READY"
	OrderStatusCancelled    OrderStatus = "CANCELLED"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusInProduction,
	OrderStatusPackaging,
	OrderStatusReady,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Label returns the customer-facing description used by the tracking portal
// and the production monitor.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusReceived:
		return "Order received"
	case OrderStatusInProduction:
		return "In production"
	case OrderStatusPackaging:
		return "Packaging"
	case OrderStatusReady:
		return "Ready for pickup"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
