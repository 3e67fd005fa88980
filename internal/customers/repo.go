package customers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
)

// Repository persists loyalty customers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a customer repository bound to the provided DB or tx.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
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

func (r *Repository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Preload("Gifts").
		Order("created_at ASC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
