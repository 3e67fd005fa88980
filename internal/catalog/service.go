package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the catalog operations exposed over the API.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreatePlot(ctx context.Context, input CreatePlotInput) (*models.Plot, error)
	GetPlot(ctx context.Context, id uuid.UUID) (*models.Plot, error)
	ListPlots(ctx context.Context) ([]models.Plot, error)
	UpdatePlot(ctx context.Context, id uuid.UUID, input UpdatePlotInput) (*models.Plot, error)
	DeletePlot(ctx context.Context, id uuid.UUID) error

	// FindPlot serves collaborators that already hold a transaction.
	FindPlot(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Plot, error)
	// FindProductTx loads a product inside the caller's transaction.
	FindProductTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if input.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	product := &models.Product{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		UnitPrice:   input.UnitPrice,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}

	var updated *models.Product
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product, err := repo.FindProduct(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Category != nil {
			product.Category = input.Category
		}
		if input.Description != nil {
			product.Description = input.Description
		}
		if input.UnitPrice != nil {
			product.UnitPrice = *input.UnitPrice
		}

		if err := repo.SaveProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save product")
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindProduct(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		remaining, err := repo.SumProductQuantity(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum product stock")
		}
		if remaining > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "product still has stock on hand")
		}
		if err := repo.DeleteProduct(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
		}
		return nil
	})
}

func (s *service) CreatePlot(ctx context.Context, input CreatePlotInput) (*models.Plot, error) {
	if input.Capacity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity must be positive")
	}
	plot := &models.Plot{Name: input.Name, Capacity: input.Capacity}
	created, err := s.repo.CreatePlot(ctx, plot)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create plot")
	}
	return created, nil
}

func (s *service) GetPlot(ctx context.Context, id uuid.UUID) (*models.Plot, error) {
	plot, err := s.repo.FindPlot(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plot not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load plot")
	}
	return plot, nil
}

func (s *service) ListPlots(ctx context.Context) ([]models.Plot, error) {
	plots, err := s.repo.ListPlots(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list plots")
	}
	return plots, nil
}

func (s *service) UpdatePlot(ctx context.Context, id uuid.UUID, input UpdatePlotInput) (*models.Plot, error) {
	var updated *models.Plot
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		plot, err := repo.FindPlot(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "plot not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load plot")
		}

		if input.Capacity != nil {
			occupied, err := repo.SumPlotQuantity(ctx, id)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum plot occupancy")
			}
			if *input.Capacity < occupied {
				return pkgerrors.New(pkgerrors.CodeConflict, "capacity below current occupancy")
			}
			plot.Capacity = *input.Capacity
		}
		if input.Name != nil {
			plot.Name = *input.Name
		}

		if err := repo.SavePlot(ctx, plot); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save plot")
		}
		updated = plot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeletePlot(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindPlot(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "plot not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load plot")
		}
		occupied, err := repo.SumPlotQuantity(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum plot occupancy")
		}
		if occupied > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "plot still holds stock")
		}
		if err := repo.DeletePlot(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete plot")
		}
		return nil
	})
}

func (s *service) FindPlot(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Plot, error) {
	return s.repo.WithTx(tx).FindPlot(ctx, id)
}

func (s *service) FindProductTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Product, error) {
	return s.repo.WithTx(tx).FindProduct(ctx, id)
}
