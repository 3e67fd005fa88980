package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:stock_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProductAndPlot(t *testing.T, db *gorm.DB, capacity int) (*models.Product, *models.Plot) {
	t.Helper()
	product := &models.Product{Name: "Oak Sapling"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	plot := &models.Plot{Name: "North Field", Capacity: capacity}
	if err := db.Create(plot).Error; err != nil {
		t.Fatalf("seed plot: %v", err)
	}
	return product, plot
}

func TestLedgerApplyCreatesEntryAndMovement(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	product, plot := seedProductAndPlot(t, db, 100)
	ledger := NewLedger(NewRepository(db))

	err := db.Transaction(func(tx *gorm.DB) error {
		entry, err := ledger.Apply(ctx, tx, AdjustInput{
			ProductID: product.ID,
			PlotID:    plot.ID,
			Delta:     10,
			Reason:    enums.MovementReasonManualAdjustment,
		})
		if err != nil {
			return err
		}
		if entry.Quantity != 10 {
			t.Fatalf("expected quantity 10, got %d", entry.Quantity)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("apply transaction: %v", err)
	}

	var movements []models.StockMovement
	if err := db.Find(&movements).Error; err != nil {
		t.Fatalf("load movements: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(movements))
	}
	if movements[0].Type != enums.MovementTypeIn || movements[0].Quantity != 10 {
		t.Fatalf("unexpected movement: %+v", movements[0])
	}
}

func TestLedgerApplyRejectsOverdraw(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	product, plot := seedProductAndPlot(t, db, 100)
	ledger := NewLedger(NewRepository(db))

	if err := db.Create(&models.StockEntry{
		ProductID: product.ID,
		PlotID:    plot.ID,
		Quantity:  3,
	}).Error; err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Apply(ctx, tx, AdjustInput{
			ProductID: product.ID,
			PlotID:    plot.ID,
			Delta:     -5,
			Reason:    enums.MovementReasonOrder,
		})
		return err
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	var entry models.StockEntry
	if err := db.First(&entry, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if entry.Quantity != 3 {
		t.Fatalf("quantity should be untouched, got %d", entry.Quantity)
	}
	var count int64
	if err := db.Model(&models.StockMovement{}).Count(&count).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	if count != 0 {
		t.Fatalf("no movement should be recorded on overdraw, got %d", count)
	}
}

func TestLedgerApplyDecrementMissingEntry(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	product, plot := seedProductAndPlot(t, db, 100)
	ledger := NewLedger(NewRepository(db))

	// An unseen pair starts at zero, so the decrement reads as an overdraw.
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Apply(ctx, tx, AdjustInput{
			ProductID: product.ID,
			PlotID:    plot.ID,
			Delta:     -1,
			Reason:    enums.MovementReasonOrder,
		})
		return err
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected insufficiency conflict, got %v", err)
	}

	var movements int64
	if err := db.Model(&models.StockMovement{}).Count(&movements).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	if movements != 0 {
		t.Fatalf("no movement should be recorded, got %d", movements)
	}
}

func TestLedgerApplyZeroDelta(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger(NewRepository(db))

	_, err := ledger.Apply(context.Background(), db, AdjustInput{
		ProductID: uuid.New(),
		PlotID:    uuid.New(),
		Reason:    enums.MovementReasonManualAdjustment,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
