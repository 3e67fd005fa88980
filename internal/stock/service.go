package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type plotLoader interface {
	FindPlot(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Plot, error)
}

// Service defines the stock operations exposed over the API.
type Service interface {
	ManualAdjust(ctx context.Context, input AdjustInput) (*models.StockEntry, error)
	ListEntries(ctx context.Context, filter EntryFilter) ([]models.StockEntry, error)
	ListMovements(ctx context.Context, filter MovementFilter) ([]models.StockMovement, error)
}

type service struct {
	repo   Repository
	ledger *Ledger
	tx     txRunner
	plots  plotLoader
}

// NewService builds a stock service with the required dependencies.
func NewService(repo Repository, ledger *Ledger, tx txRunner, plots plotLoader) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stock repository required")
	}
	if ledger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stock ledger required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if plots == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "plot loader required")
	}
	return &service{repo: repo, ledger: ledger, tx: tx, plots: plots}, nil
}

func (s *service) ManualAdjust(ctx context.Context, input AdjustInput) (*models.StockEntry, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.PlotID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plot id required")
	}
	if input.Delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta cannot be zero")
	}
	input.Reason = enums.MovementReasonManualAdjustment
	input.OrderID = nil

	var entry *models.StockEntry
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		plot, err := s.plots.FindPlot(ctx, tx, input.PlotID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "plot not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load plot")
		}

		if input.Delta > 0 {
			occupied, err := s.repo.WithTx(tx).SumPlotQuantity(ctx, input.PlotID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum plot occupancy")
			}
			if occupied+input.Delta > plot.Capacity {
				return pkgerrors.New(pkgerrors.CodeConflict, "plot capacity exceeded")
			}
		}

		entry, err = s.ledger.Apply(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) ListEntries(ctx context.Context, filter EntryFilter) ([]models.StockEntry, error) {
	entries, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock entries")
	}
	return entries, nil
}

func (s *service) ListMovements(ctx context.Context, filter MovementFilter) ([]models.StockMovement, error) {
	movements, err := s.repo.ListMovements(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock movements")
	}
	return movements, nil
}
