package loyalty

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a loyalty repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("Gifts").
		Preload("Medals").
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) CountGifts(ctx context.Context, customerID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Gift{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *repository) CreateGift(ctx context.Context, gift *models.Gift) error {
	return r.db.WithContext(ctx).Create(gift).Error
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

func (r *repository) FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).
		Omit("Items", "Customer").
		Save(order).Error
}

func (r *repository) AdjustCustomerPoints(ctx context.Context, customerID uuid.UUID, delta int) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ? AND total_points + ? >= 0", customerID, delta).
		Update("total_points", gorm.Expr("total_points + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	// Re-read inside the same transaction so callers see the total the
	// guarded update actually produced, not the row they loaded earlier.
	var updated models.Customer
	if err := r.db.WithContext(ctx).
		Select("total_points").
		Where("id = ?", customerID).
		First(&updated).Error; err != nil {
		return 0, err
	}
	return updated.TotalPoints, nil
}
