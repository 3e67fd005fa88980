package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/internal/stock"
	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
	"github.com/sharkleaf/backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindProductTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Product, error)
}

type stockApplier interface {
	Apply(ctx context.Context, tx *gorm.DB, input stock.AdjustInput) (*models.StockEntry, error)
}

// Service drives the order workflow.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Transition(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByTicket(ctx context.Context, ticket string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Monitor(ctx context.Context) ([]MonitorRow, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	products productLoader
	ledger   stockApplier
	meter    *metrics.WorkflowMetrics
}

// NewService builds an order service with the required dependencies. The
// metrics handle may be nil in tests; its methods tolerate that.
func NewService(repo Repository, tx txRunner, products productLoader, ledger stockApplier, meter *metrics.WorkflowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		products: products,
		ledger:   ledger,
		meter:    meter,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	started := time.Now()
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one item")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var gift *models.Gift
		if input.GiftCode != nil {
			var err error
			gift, err = repo.FindGiftByCode(ctx, *input.GiftCode)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return pkgerrors.New(pkgerrors.CodeNotFound, "gift code not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gift")
			}
			if gift.Used {
				return pkgerrors.New(pkgerrors.CodeConflict, "gift code already used")
			}
		}

		gross := decimal.Zero
		points := 0
		items := make([]models.OrderLineItem, 0, len(input.Items))
		productNames := make(map[uuid.UUID]string, len(input.Items))
		for _, line := range input.Items {
			if line.Quantity <= 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
			}
			product, err := s.products.FindProductTx(ctx, tx, line.ProductID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			productNames[product.ID] = product.Name

			allocated := 0
			allocations := make([]models.LineItemAllocation, 0, len(line.Allocations))
			for _, alloc := range line.Allocations {
				if alloc.Quantity <= 0 {
					return pkgerrors.New(pkgerrors.CodeValidation, "allocation quantity must be positive")
				}
				allocated += alloc.Quantity
				allocations = append(allocations, models.LineItemAllocation{
					PlotID:   alloc.PlotID,
					Quantity: alloc.Quantity,
				})
			}
			if allocated != line.Quantity {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("allocations for %s sum to %d, expected %d", product.Name, allocated, line.Quantity))
			}

			subtotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			gross = gross.Add(subtotal)
			points += line.Quantity
			items = append(items, models.OrderLineItem{
				ProductID:   product.ID,
				Quantity:    line.Quantity,
				UnitPrice:   product.UnitPrice,
				Subtotal:    subtotal,
				Allocations: allocations,
			})
		}

		discountAmount := gross.
			Mul(decimal.NewFromFloat(input.DiscountPercent)).
			Div(decimal.NewFromInt(100)).
			Round(2)
		net := gross.Sub(discountAmount)

		ticket, err := newTicket(ctx, repo)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocate ticket")
		}

		order := &models.Order{
			Ticket:          ticket,
			QRRef:           qrRef(ticket),
			Status:          enums.OrderStatusReceived,
			GrossAmount:     gross,
			DiscountPercent: input.DiscountPercent,
			DiscountAmount:  discountAmount,
			NetAmount:       net,
			PointsGenerated: points,
			Items:           items,
		}
		if gift != nil {
			order.GiftCode = &gift.Code
		}

		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}

		for _, item := range order.Items {
			for _, alloc := range item.Allocations {
				if _, err := s.ledger.Apply(ctx, tx, stock.AdjustInput{
					ProductID: item.ProductID,
					PlotID:    alloc.PlotID,
					Delta:     -alloc.Quantity,
					Reason:    enums.MovementReasonOrder,
					OrderID:   &order.ID,
				}); err != nil {
					if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
						return pkgerrors.New(pkgerrors.CodeConflict,
							fmt.Sprintf("insufficient stock of %s", productNames[item.ProductID]))
					}
					return err
				}
			}
		}

		if gift != nil {
			now := time.Now().UTC()
			gift.Used = true
			gift.UsedAt = &now
			gift.OrderID = &order.ID
			if err := repo.SaveGift(ctx, gift); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume gift")
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.meter.IncOrdersCreated()
	s.meter.ObserveOrderOperation("create", time.Since(started))
	return s.GetByID(ctx, created.ID)
}

func (s *service) Transition(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", target))
	}

	if target == enums.OrderStatusCancelled {
		return s.cancel(ctx, id)
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == enums.OrderStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cancelled order cannot change status")
		}
		if order.Status == target {
			updated = order
			return nil
		}

		order.Status = target
		if err := repo.SaveOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.meter.IncTransition(target.String())
	return updated, nil
}

// cancel reverses every side effect the order produced: stock returns to its
// plots, a consumed gift becomes usable again, and redeemed points are clawed
// back from the customer.
func (s *service) cancel(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	started := time.Now()
	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == enums.OrderStatusCancelled {
			updated = order
			return nil
		}

		for _, item := range order.Items {
			for _, alloc := range item.Allocations {
				if _, err := s.ledger.Apply(ctx, tx, stock.AdjustInput{
					ProductID: item.ProductID,
					PlotID:    alloc.PlotID,
					Delta:     alloc.Quantity,
					Reason:    enums.MovementReasonCancellation,
					OrderID:   &order.ID,
				}); err != nil {
					return err
				}
			}
		}

		if order.GiftCode != nil {
			gift, err := repo.FindGiftByCode(ctx, *order.GiftCode)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load consumed gift")
			}
			gift.Used = false
			gift.UsedAt = nil
			gift.OrderID = nil
			if err := repo.SaveGift(ctx, gift); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reinstate gift")
			}
		}

		if order.Redeemed && order.CustomerID != nil {
			if err := repo.AdjustCustomerPoints(ctx, *order.CustomerID, -order.PointsGenerated); err != nil {
				if err == gorm.ErrRecordNotFound {
					return pkgerrors.New(pkgerrors.CodeConflict, "customer points below redeemed amount")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claw back points")
			}
		}

		order.Status = enums.OrderStatusCancelled
		order.Redeemed = false
		order.CustomerID = nil
		if err := repo.SaveOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cancellation")
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.meter.IncOrdersCanceled()
	s.meter.ObserveOrderOperation("cancel", time.Since(started))
	return updated, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) GetByTicket(ctx context.Context, ticket string) (*models.Order, error) {
	if ticket == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket required")
	}
	order, err := s.repo.FindByTicket(ctx, ticket)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order by ticket")
	}
	return order, nil
}

func (s *service) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) Monitor(ctx context.Context) ([]MonitorRow, error) {
	orders, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active orders")
	}

	rows := make([]MonitorRow, 0, len(orders))
	for _, order := range orders {
		row := MonitorRow{
			Ticket:      order.Ticket,
			Status:      order.Status,
			StatusLabel: order.Status.Label(),
			Items:       make([]string, 0, len(order.Items)),
		}
		if order.Customer != nil {
			name := order.Customer.Name
			row.CustomerName = &name
		}
		for _, item := range order.Items {
			label := fmt.Sprintf("%d×", item.Quantity)
			if item.Product != nil {
				label = fmt.Sprintf("%d× %s", item.Quantity, item.Product.Name)
			}
			row.Items = append(row.Items, label)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
