package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stock repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateEntry(ctx context.Context, entry *models.StockEntry) (*models.StockEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) FindEntry(ctx context.Context, productID, plotID uuid.UUID) (*models.StockEntry, error) {
	var entry models.StockEntry
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND plot_id = ?", productID, plotID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListEntries(ctx context.Context, filter EntryFilter) ([]models.StockEntry, error) {
	query := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Plot").
		Order("created_at ASC")
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.PlotID != nil {
		query = query.Where("plot_id = ?", *filter.PlotID)
	}

	var entries []models.StockEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
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

func (r *repository) AdjustQuantity(ctx context.Context, entryID uuid.UUID, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Where("id = ? AND quantity + ? >= 0", entryID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateMovement(ctx context.Context, movement *models.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *repository) ListMovements(ctx context.Context, filter MovementFilter) ([]models.StockMovement, error) {
	query := r.db.WithContext(ctx).
		Preload("StockEntry").
		Preload("StockEntry.Product").
		Preload("StockEntry.Plot").
		Order("created_at DESC")
	if filter.StockEntryID != nil {
		query = query.Where("stock_entry_id = ?", *filter.StockEntryID)
	}
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var movements []models.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
