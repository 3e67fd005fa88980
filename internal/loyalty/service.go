package loyalty

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db"
	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
	"github.com/sharkleaf/backend/pkg/metrics"
)

// Every full hundred points earns one gift.
const pointsPerGift = 100

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives point redemption and gift issuance.
type Service interface {
	Redeem(ctx context.Context, customerID, orderID uuid.UUID) (*RedeemResult, error)
	GenerateGift(ctx context.Context, customerID uuid.UUID) (*models.Gift, error)
	ValidateGift(ctx context.Context, code string) (*GiftValidation, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	meter *metrics.WorkflowMetrics
}

// NewService builds a loyalty service with the required dependencies. The
// metrics handle may be nil in tests.
func NewService(repo Repository, tx txRunner, meter *metrics.WorkflowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("loyalty repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, meter: meter}, nil
}

func (s *service) Redeem(ctx context.Context, customerID, orderID uuid.UUID) (*RedeemResult, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var result RedeemResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.OrderStatusReady {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not ready for redemption")
		}
		if order.Redeemed {
			return pkgerrors.New(pkgerrors.CodeConflict, "order already redeemed")
		}

		customer, err := repo.FindCustomer(ctx, customerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}

		order.Redeemed = true
		order.CustomerID = &customer.ID
		if err := repo.SaveOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order redeemed")
		}

		// Gift math must come from the total the guarded update produced;
		// a concurrent redemption may have committed since the read above.
		points := order.PointsGenerated
		newTotal := customer.TotalPoints
		if points > 0 {
			total, err := repo.AdjustCustomerPoints(ctx, customer.ID, points)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit points")
			}
			newTotal = total
		}

		owned, err := repo.CountGifts(ctx, customer.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count gifts")
		}
		owed := newTotal/pointsPerGift - owned

		for i := 0; i < owed; i++ {
			if _, err := issueGift(ctx, repo, customer.ID); err != nil {
				return err
			}
		}

		result = RedeemResult{
			PointsRedeemed: points,
			PointsTotal:    newTotal,
			GiftsGenerated: maxInt(owed, 0),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.meter.AddPointsRedeemed(result.PointsRedeemed)
	for i := 0; i < result.GiftsGenerated; i++ {
		s.meter.IncGiftsIssued()
	}
	return &result, nil
}

func (s *service) GenerateGift(ctx context.Context, customerID uuid.UUID) (*models.Gift, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	var gift *models.Gift
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		customer, err := repo.FindCustomer(ctx, customerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}

		owned, err := repo.CountGifts(ctx, customer.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count gifts")
		}
		available := customer.TotalPoints/pointsPerGift - owned
		if available <= 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "no gifts available")
		}

		gift, err = issueGift(ctx, repo, customer.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.meter.IncGiftsIssued()
	return gift, nil
}

func (s *service) ValidateGift(ctx context.Context, code string) (*GiftValidation, error) {
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "gift code required")
	}

	gift, err := s.repo.FindGiftByCode(ctx, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "gift code not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gift")
	}
	if gift.Used {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "gift code already used")
	}

	validation := &GiftValidation{Valid: true}
	if gift.Customer != nil {
		validation.CustomerName = gift.Customer.Name
	}
	return validation, nil
}

// issueGift inserts a gift with a fresh code. Collisions are detected by an
// existence check before the insert so the surrounding transaction stays
// usable; the unique index on code remains the hard backstop.
func issueGift(ctx context.Context, repo Repository, customerID uuid.UUID) (*models.Gift, error) {
	for attempt := 0; attempt < maxGiftCodeAttempts; attempt++ {
		code, err := randomGiftCode()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate gift code")
		}
		if _, err := repo.FindGiftByCode(ctx, code); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check gift code")
		}
		gift := &models.Gift{Code: code, CustomerID: customerID}
		if err := repo.CreateGift(ctx, gift); err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "gift code collision")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist gift")
		}
		return gift, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal,
		fmt.Sprintf("exhausted %d gift code attempts", maxGiftCodeAttempts))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
