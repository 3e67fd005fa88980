package scans

import "github.com/google/uuid"

// RecordInput captures one tracking-page scan. Name and CustomerID come from
// the session when present; anonymous visitors are recorded as such.
type RecordInput struct {
	OrderID    uuid.UUID `json:"order_id" validate:"required"`
	Location   *string   `json:"location,omitempty"`
	CustomerID *uuid.UUID
	Name       string
	IP         string
	UserAgent  string
}

const anonymousVisitorName = "Visitante"
