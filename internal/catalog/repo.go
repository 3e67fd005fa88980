package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Stocks").
		Preload("Stocks.Plot").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Stocks").
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *repository) SumProductQuantity(ctx context.Context, productID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *repository) CreatePlot(ctx context.Context, plot *models.Plot) (*models.Plot, error) {
	if err := r.db.WithContext(ctx).Create(plot).Error; err != nil {
		return nil, err
	}
	return plot, nil
}

func (r *repository) FindPlot(ctx context.Context, id uuid.UUID) (*models.Plot, error) {
	var plot models.Plot
	err := r.db.WithContext(ctx).
		Preload("Stocks").
		Preload("Stocks.Product").
		Where("id = ?", id).
		First(&plot).Error
	if err != nil {
		return nil, err
	}
	return &plot, nil
}

func (r *repository) ListPlots(ctx context.Context) ([]models.Plot, error) {
	var plots []models.Plot
	err := r.db.WithContext(ctx).
		Preload("Stocks").
		Order("name ASC").
		Find(&plots).Error
	if err != nil {
		return nil, err
	}
	return plots, nil
}

func (r *repository) SavePlot(ctx context.Context, plot *models.Plot) error {
	return r.db.WithContext(ctx).Save(plot).Error
}

func (r *repository) DeletePlot(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Plot{}, "id = ?", id).Error
}

func (r *repository) SumPlotQuantity(ctx context.Context, plotID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Where("plot_id = ?", plotID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}
