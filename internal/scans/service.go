package scans

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
)

// Service records who scanned an order's QR code and from where.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*models.QRScan, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.QRScan, error)
}

type service struct {
	repo *Repository
}

func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database connection required")
	}
	return &service{repo: NewRepository(db)}, nil
}

func (s *service) Record(ctx context.Context, input RecordInput) (*models.QRScan, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	exists, err := s.repo.OrderExists(ctx, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check order")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" && input.CustomerID != nil {
		found, err := s.repo.CustomerName(ctx, *input.CustomerID)
		if err == nil {
			name = found
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}
	}
	if name == "" {
		name = anonymousVisitorName
	}
	ip := strings.TrimSpace(input.IP)
	if ip == "" {
		ip = "unknown"
	}
	userAgent := strings.TrimSpace(input.UserAgent)
	if userAgent == "" {
		userAgent = "unknown"
	}

	scan := &models.QRScan{
		OrderID:    input.OrderID,
		CustomerID: input.CustomerID,
		Name:       name,
		Location:   input.Location,
		IP:         ip,
		UserAgent:  userAgent,
	}
	created, err := s.repo.Create(ctx, scan)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record scan")
	}
	return created, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.QRScan, error) {
	rows, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list scans")
	}
	return rows, nil
}
