package customers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/internal/users"
	"github.com/sharkleaf/backend/pkg/config"
	"github.com/sharkleaf/backend/pkg/db"
	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
	"github.com/sharkleaf/backend/pkg/security"
)

// Service manages loyalty program membership.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*ProfileView, error)
	Profile(ctx context.Context, customerID uuid.UUID) (*ProfileView, error)
	List(ctx context.Context) ([]ProfileView, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	db          *gorm.DB
	tx          txRunner
	passwordCfg config.PasswordConfig
}

// NewService builds a customer service with the required dependencies.
func NewService(conn *gorm.DB, tx txRunner, passwordCfg config.PasswordConfig) (Service, error) {
	if conn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database connection required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &service{db: conn, tx: tx, passwordCfg: passwordCfg}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*ProfileView, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var profile *ProfileView
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		customerRepo := NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		customer, err := customerRepo.Create(ctx, &models.Customer{
			Name:  strings.TrimSpace(req.Name),
			Email: email,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
		}

		if _, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			Role:         enums.UserRoleCustomer,
			CustomerID:   &customer.ID,
		}); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		profile = profileFromModel(customer)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return profile, nil
}

func (s *service) Profile(ctx context.Context, customerID uuid.UUID) (*ProfileView, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	customer, err := NewRepository(s.db).FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return profileFromModel(customer), nil
}

func (s *service) List(ctx context.Context) ([]ProfileView, error) {
	customers, err := NewRepository(s.db).List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	views := make([]ProfileView, 0, len(customers))
	for i := range customers {
		views = append(views, *profileFromModel(&customers[i]))
	}
	return views, nil
}
