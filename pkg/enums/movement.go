package enums

import "fmt"

// MovementType distinguishes stock increments from decrements.
type MovementType string

const (
	MovementTypeIn  MovementType = "IN"
	MovementTypeOut MovementType = "OUT"
)

var validMovementTypes = []MovementType{MovementTypeIn, MovementTypeOut}

func (m MovementType) String() string {
	return string(m)
}

func (m MovementType) IsValid() bool {
	for _, candidate := range validMovementTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMovementType converts raw input into a MovementType.
func ParseMovementType(value string) (MovementType, error) {
	for _, candidate := range validMovementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movement type %q", value)
}

// MovementReason records why a stock quantity changed.
type MovementReason string

const (
	MovementReasonManualAdjustment MovementReason = "MANUAL_ADJUSTMENT"
	MovementReasonOrder            MovementReason = "ORDER"
	MovementReasonCancellation     MovementReason = "CANCELLATION"
)

var validMovementReasons = []MovementReason{
	MovementReasonManualAdjustment,
	MovementReasonOrder,
	MovementReasonCancellation,
}

func (m MovementReason) String() string {
	return string(m)
}

func (m MovementReason) IsValid() bool {
	for _, candidate := range validMovementReasons {
		if candidate == m {
			return true
		}
	}
	return false
}
