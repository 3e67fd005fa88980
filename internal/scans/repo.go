package scans

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
)

// Repository persists QR scan events.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) OrderExists(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CustomerName(ctx context.Context, customerID uuid.UUID) (string, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Select("name").
		Where("id = ?", customerID).
		First(&customer).Error
	if err != nil {
		return "", err
	}
	return customer.Name, nil
}

func (r *Repository) Create(ctx context.Context, scan *models.QRScan) (*models.QRScan, error) {
	if err := r.db.WithContext(ctx).Create(scan).Error; err != nil {
		return nil, err
	}
	return scan, nil
}

func (r *Repository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.QRScan, error) {
	var scansList []models.QRScan
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&scansList).Error
	if err != nil {
		return nil, err
	}
	return scansList, nil
}
