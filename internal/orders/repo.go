package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) TicketExists(ctx context.Context, ticket string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("ticket = ?", ticket).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := orderPreloads(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByTicket(ctx context.Context, ticket string) (*models.Order, error) {
	var order models.Order
	err := orderPreloads(r.db.WithContext(ctx)).
		Where("ticket = ?", ticket).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := orderPreloads(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListActive(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := orderPreloads(r.db.WithContext(ctx)).
		Where("status <> ?", enums.OrderStatusCancelled).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).
		Omit("Items", "Customer").
		Save(order).Error
}

func (r *repository) FindGiftByCode(ctx context.Context, code string) (*models.Gift, error) {
	var gift models.Gift
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("code = ?", code).
		First(&gift).Error
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *repository) SaveGift(ctx context.Context, gift *models.Gift) error {
	return r.db.WithContext(ctx).
		Omit("Customer").
		Save(gift).Error
}

func (r *repository) AdjustCustomerPoints(ctx context.Context, customerID uuid.UUID, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ? AND total_points + ? >= 0", customerID, delta).
		Update("total_points", gorm.Expr("total_points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
