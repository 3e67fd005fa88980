package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
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
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
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
	svc, err := NewService(NewRepository(db), testTxRunner{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestProductLifecycle(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestService(t, db)

	category := "trees"
	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:      "Maple Sapling",
		Category:  &category,
		UnitPrice: decimal.NewFromFloat(12.50),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	newName := "Red Maple Sapling"
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Name: &newName})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("expected renamed product, got %s", updated.Name)
	}
	if !updated.UnitPrice.Equal(decimal.NewFromFloat(12.50)) {
		t.Fatalf("price should be unchanged, got %s", updated.UnitPrice)
	}

	products, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if _, err := svc.GetProduct(ctx, created.ID); pkgerrors.As(err) == nil {
		t.Fatal("expected not found after delete")
	}
}

func TestDeleteProductWithStockRejected(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestService(t, db)

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:      "Fern",
		UnitPrice: decimal.NewFromInt(3),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	plot, err := svc.CreatePlot(ctx, CreatePlotInput{Name: "Shade House", Capacity: 40})
	if err != nil {
		t.Fatalf("create plot: %v", err)
	}
	if err := db.Create(&models.StockEntry{
		ProductID: product.ID,
		PlotID:    plot.ID,
		Quantity:  5,
	}).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	err = svc.DeleteProduct(ctx, product.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestPlotCapacityGuards(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestService(t, db)

	plot, err := svc.CreatePlot(ctx, CreatePlotInput{Name: "East Bed", Capacity: 10})
	if err != nil {
		t.Fatalf("create plot: %v", err)
	}
	product, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:      "Lavender",
		UnitPrice: decimal.NewFromInt(4),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := db.Create(&models.StockEntry{
		ProductID: product.ID,
		PlotID:    plot.ID,
		Quantity:  8,
	}).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	smaller := 5
	_, err = svc.UpdatePlot(ctx, plot.ID, UpdatePlotInput{Capacity: &smaller})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected capacity conflict, got %v", err)
	}

	larger := 20
	updated, err := svc.UpdatePlot(ctx, plot.ID, UpdatePlotInput{Capacity: &larger})
	if err != nil {
		t.Fatalf("grow capacity: %v", err)
	}
	if updated.Capacity != 20 {
		t.Fatalf("expected capacity 20, got %d", updated.Capacity)
	}

	err = svc.DeletePlot(ctx, plot.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected occupied plot conflict, got %v", err)
	}
}

func TestCreateProductNegativePrice(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:      "Bad Price",
		UnitPrice: decimal.NewFromInt(-1),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
