package loyalty

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
)

// Repository exposes the loyalty persistence surface.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	CountGifts(ctx context.Context, customerID uuid.UUID) (int, error)
	CreateGift(ctx context.Context, gift *models.Gift) error
	FindGiftByCode(ctx context.Context, code string) (*models.Gift, error)

	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order) error

	// AdjustCustomerPoints applies delta with a non-negativity guard at write
	// time and returns the total the update produced. It reports
	// gorm.ErrRecordNotFound when the guard rejects the update.
	AdjustCustomerPoints(ctx context.Context, customerID uuid.UUID, delta int) (int, error)
}
