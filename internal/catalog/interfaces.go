package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
)

// Repository exposes catalog persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	SaveProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SumProductQuantity(ctx context.Context, productID uuid.UUID) (int, error)

	CreatePlot(ctx context.Context, plot *models.Plot) (*models.Plot, error)
	FindPlot(ctx context.Context, id uuid.UUID) (*models.Plot, error)
	ListPlots(ctx context.Context) ([]models.Plot, error)
	SavePlot(ctx context.Context, plot *models.Plot) error
	DeletePlot(ctx context.Context, id uuid.UUID) error
	SumPlotQuantity(ctx context.Context, plotID uuid.UUID) (int, error)
}
