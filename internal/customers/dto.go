package customers

import (
	"github.com/google/uuid"

	"github.com/sharkleaf/backend/internal/loyalty"
	"github.com/sharkleaf/backend/pkg/db/models"
)

// RegisterRequest contains the payload for joining the loyalty program.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=160"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// MedalView is the public projection of an earned medal.
type MedalView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// GiftView is the public projection of an owned gift.
type GiftView struct {
	Code string `json:"code"`
	Used bool   `json:"used"`
}

// ProfileView aggregates everything the loyalty profile page shows.
type ProfileView struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	TotalPoints int              `json:"total_points"`
	Tier        loyalty.TierInfo `json:"tier"`
	Gifts       []GiftView       `json:"gifts"`
	Medals      []MedalView      `json:"medals"`
}

func profileFromModel(customer *models.Customer) *ProfileView {
	view := &ProfileView{
		ID:          customer.ID,
		Name:        customer.Name,
		Email:       customer.Email,
		TotalPoints: customer.TotalPoints,
		Tier:        loyalty.Tier(customer.TotalPoints),
		Gifts:       make([]GiftView, 0, len(customer.Gifts)),
		Medals:      make([]MedalView, 0, len(customer.Medals)),
	}
	for _, gift := range customer.Gifts {
		view.Gifts = append(view.Gifts, GiftView{Code: gift.Code, Used: gift.Used})
	}
	for _, medal := range customer.Medals {
		view.Medals = append(view.Medals, MedalView{
			Name:        medal.Name,
			Description: medal.Description,
			Icon:        medal.Icon,
		})
	}
	return view
}
