package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
)

// Repository exposes order persistence plus the gift and customer writes that
// belong to the order transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	TicketExists(ctx context.Context, ticket string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByTicket(ctx context.Context, ticket string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListActive(ctx context.Context) ([]models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order) error

	FindGiftByCode(ctx context.Context, code string) (*models.Gift, error)
	SaveGift(ctx context.Context, gift *models.Gift) error

	// AdjustCustomerPoints applies delta with a non-negativity guard at write
	// time. It reports gorm.ErrRecordNotFound when the guard rejects the update.
	AdjustCustomerPoints(ctx context.Context, customerID uuid.UUID, delta int) error
}

// orderPreloads is the association set every order read carries.
func orderPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Allocations").
		Preload("Items.Allocations.Plot").
		Preload("Customer")
}
