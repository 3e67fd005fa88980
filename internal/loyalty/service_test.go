package loyalty

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:loyalty_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), testTxRunner{db: db}, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func seedCustomer(t *testing.T, db *gorm.DB, points int) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:        "Clara",
		Email:       uuid.NewString() + "@example.com",
		TotalPoints: points,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func seedReadyOrder(t *testing.T, db *gorm.DB, points int) *models.Order {
	t.Helper()
	order := &models.Order{
		Ticket:          strings.ToUpper(uuid.NewString()[:6]),
		QRRef:           "order_test",
		Status:          enums.OrderStatusReady,
		PointsGenerated: points,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestRedeemCrossesGiftThreshold(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	customer := seedCustomer(t, db, 95)
	order := seedReadyOrder(t, db, 10)
	svc := newTestService(t, db)

	result, err := svc.Redeem(ctx, customer.ID, order.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if result.PointsRedeemed != 10 || result.PointsTotal != 105 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.GiftsGenerated != 1 {
		t.Fatalf("expected exactly one gift, got %d", result.GiftsGenerated)
	}

	var gifts []models.Gift
	if err := db.Where("customer_id = ?", customer.ID).Find(&gifts).Error; err != nil {
		t.Fatalf("load gifts: %v", err)
	}
	if len(gifts) != 1 {
		t.Fatalf("expected 1 gift row, got %d", len(gifts))
	}
	if !strings.HasPrefix(gifts[0].Code, "GIFT-") || len(gifts[0].Code) != 11 {
		t.Fatalf("unexpected gift code %q", gifts[0].Code)
	}

	var updated models.Order
	if err := db.First(&updated, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if !updated.Redeemed || updated.CustomerID == nil || *updated.CustomerID != customer.ID {
		t.Fatalf("order should be linked to customer: %+v", updated)
	}
}

func TestRedeemTwiceRejected(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	customer := seedCustomer(t, db, 0)
	order := seedReadyOrder(t, db, 5)
	svc := newTestService(t, db)

	if _, err := svc.Redeem(ctx, customer.ID, order.ID); err != nil {
		t.Fatalf("first redeem: %v", err)
	}

	_, err := svc.Redeem(ctx, customer.ID, order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	var owner models.Customer
	if err := db.First(&owner, "id = ?", customer.ID).Error; err != nil {
		t.Fatalf("load customer: %v", err)
	}
	if owner.TotalPoints != 5 {
		t.Fatalf("second redemption must not move points, got %d", owner.TotalPoints)
	}
}

func TestRedeemRequiresReadyStatus(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	customer := seedCustomer(t, db, 0)
	order := seedReadyOrder(t, db, 5)
	if err := db.Model(order).Update("status", enums.OrderStatusPackaging).Error; err != nil {
		t.Fatalf("set status: %v", err)
	}
	svc := newTestService(t, db)

	_, err := svc.Redeem(ctx, customer.ID, order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestGiftIssuanceIsGapFree(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	customer := seedCustomer(t, db, 0)
	svc := newTestService(t, db)

	// three redemptions worth 250 points total: entitles floor(250/100) = 2 gifts
	for _, points := range []int{120, 90, 40} {
		order := seedReadyOrder(t, db, points)
		if _, err := svc.Redeem(ctx, customer.ID, order.ID); err != nil {
			t.Fatalf("redeem %d: %v", points, err)
		}
	}

	var count int64
	if err := db.Model(&models.Gift{}).Where("customer_id = ?", customer.ID).Count(&count).Error; err != nil {
		t.Fatalf("count gifts: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 gifts for 250 points, got %d", count)
	}

	// no extra gift can be forced
	_, err := svc.GenerateGift(ctx, customer.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected no gifts available, got %v", err)
	}
}

func TestGenerateGiftWhenAvailable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	customer := seedCustomer(t, db, 230)
	svc := newTestService(t, db)

	first, err := svc.GenerateGift(ctx, customer.ID)
	if err != nil {
		t.Fatalf("first gift: %v", err)
	}
	second, err := svc.GenerateGift(ctx, customer.ID)
	if err != nil {
		t.Fatalf("second gift: %v", err)
	}
	if first.Code == second.Code {
		t.Fatalf("gift codes must differ")
	}

	_, err = svc.GenerateGift(ctx, customer.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected exhaustion conflict, got %v", err)
	}
}

func TestValidateGift(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	customer := seedCustomer(t, db, 0)
	svc := newTestService(t, db)

	gift := &models.Gift{Code: "GIFT-VALID1", CustomerID: customer.ID}
	if err := db.Create(gift).Error; err != nil {
		t.Fatalf("seed gift: %v", err)
	}

	validation, err := svc.ValidateGift(ctx, gift.Code)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !validation.Valid || validation.CustomerName != customer.Name {
		t.Fatalf("unexpected validation %+v", validation)
	}

	if err := db.Model(gift).Update("used", true).Error; err != nil {
		t.Fatalf("mark used: %v", err)
	}
	_, err = svc.ValidateGift(ctx, gift.Code)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected used conflict, got %v", err)
	}

	_, err = svc.ValidateGift(ctx, "GIFT-MISSING")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

// concurrentCreditRepo applies an extra credit through the open transaction
// right before the guarded update, standing in for another redemption that
// committed after this one read the customer row.
type concurrentCreditRepo struct {
	Repository
	tx     *gorm.DB
	target uuid.UUID
	extra  int
	fired  *bool
}

func (r *concurrentCreditRepo) WithTx(tx *gorm.DB) Repository {
	return &concurrentCreditRepo{
		Repository: r.Repository.WithTx(tx),
		tx:         tx,
		target:     r.target,
		extra:      r.extra,
		fired:      r.fired,
	}
}

func (r *concurrentCreditRepo) AdjustCustomerPoints(ctx context.Context, customerID uuid.UUID, delta int) (int, error) {
	if r.tx != nil && !*r.fired {
		*r.fired = true
		err := r.tx.WithContext(ctx).
			Model(&models.Customer{}).
			Where("id = ?", r.target).
			Update("total_points", gorm.Expr("total_points + ?", r.extra)).Error
		if err != nil {
			return 0, err
		}
	}
	return r.Repository.AdjustCustomerPoints(ctx, customerID, delta)
}

func TestRedeemComputesGiftsFromUpdatedTotal(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	customer := seedCustomer(t, db, 90)
	order := seedReadyOrder(t, db, 60)

	repo := &concurrentCreditRepo{
		Repository: NewRepository(db),
		target:     customer.ID,
		extra:      60,
		fired:      new(bool),
	}
	svc, err := NewService(repo, testTxRunner{db: db}, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	result, err := svc.Redeem(ctx, customer.ID, order.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}

	// 90 read + 60 concurrent + 60 redeemed = 210 in the database.
	if result.PointsTotal != 210 {
		t.Fatalf("expected reported total 210, got %d", result.PointsTotal)
	}
	if result.GiftsGenerated != 2 {
		t.Fatalf("expected 2 gifts for 210 points, got %d", result.GiftsGenerated)
	}

	var reloaded models.Customer
	if err := db.Preload("Gifts").First(&reloaded, "id = ?", customer.ID).Error; err != nil {
		t.Fatalf("reload customer: %v", err)
	}
	if reloaded.TotalPoints != 210 {
		t.Fatalf("expected db total 210, got %d", reloaded.TotalPoints)
	}
	if len(reloaded.Gifts) != 210/pointsPerGift {
		t.Fatalf("expected %d gifts, got %d", 210/pointsPerGift, len(reloaded.Gifts))
	}
}
