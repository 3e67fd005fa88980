package users

import (
	"github.com/google/uuid"

	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
)

// View is the public projection of a user.
type View struct {
	ID         uuid.UUID      `json:"id"`
	Email      string         `json:"email"`
	Role       enums.UserRole `json:"role"`
	CustomerID *uuid.UUID     `json:"customer_id,omitempty"`
}

// FromModel converts a stored user into its public projection.
func FromModel(user *models.User) View {
	return View{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		CustomerID: user.CustomerID,
	}
}
