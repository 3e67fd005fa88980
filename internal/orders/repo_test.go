package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sharkleaf/backend/pkg/db/models"
	"github.com/sharkleaf/backend/pkg/enums"
)

func setupOrdersRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:orders_repo_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedOrderWithItem(t *testing.T, db *gorm.DB, ticket string, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()

	product := &models.Product{Name: "Pine Sapling " + ticket, UnitPrice: decimal.NewFromFloat(8.25)}
	require.NoError(t, db.Create(product).Error)
	plot := &models.Plot{Name: "Plot " + ticket, Capacity: 100}
	require.NoError(t, db.Create(plot).Error)

	order := &models.Order{
		Ticket:      ticket,
		QRRef:       "order_" + ticket,
		Status:      status,
		GrossAmount: decimal.NewFromFloat(16.50),
		NetAmount:   decimal.NewFromFloat(16.50),
		CreatedAt:   createdAt,
		Items: []models.OrderLineItem{{
			ProductID: product.ID,
			Quantity:  2,
			UnitPrice: product.UnitPrice,
			Subtotal:  decimal.NewFromFloat(16.50),
			Allocations: []models.LineItemAllocation{{
				PlotID:   plot.ID,
				Quantity: 2,
			}},
		}},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestOrdersRepoFindByTicketPreloadsAssociations(t *testing.T) {
	t.Parallel()

	db := setupOrdersRepoDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seeded := seedOrderWithItem(t, db, "AB23CD", enums.OrderStatusReceived, time.Now())

	found, err := repo.FindByTicket(ctx, "AB23CD")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	require.Len(t, found.Items, 1)
	require.NotNil(t, found.Items[0].Product)
	assert.Equal(t, "Pine Sapling AB23CD", found.Items[0].Product.Name)
	require.Len(t, found.Items[0].Allocations, 1)
	assert.Equal(t, 2, found.Items[0].Allocations[0].Quantity)

	_, err = repo.FindByTicket(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrdersRepoTicketExists(t *testing.T) {
	t.Parallel()

	db := setupOrdersRepoDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedOrderWithItem(t, db, "CD45EF", enums.OrderStatusReceived, time.Now())

	exists, err := repo.TicketExists(ctx, "CD45EF")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.TicketExists(ctx, "GH67JK")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOrdersRepoListActiveSkipsCancelled(t *testing.T) {
	t.Parallel()

	db := setupOrdersRepoDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	seedOrderWithItem(t, db, "AAAAAA", enums.OrderStatusReceived, base)
	seedOrderWithItem(t, db, "BBBBBB", enums.OrderStatusCancelled, base.Add(10*time.Minute))
	seedOrderWithItem(t, db, "CCCCCC", enums.OrderStatusReady, base.Add(20*time.Minute))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// Oldest first so the display board reads top-down in arrival order.
	assert.Equal(t, "AAAAAA", active[0].Ticket)
	assert.Equal(t, "CCCCCC", active[1].Ticket)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrdersRepoAdjustCustomerPointsGuardsNegative(t *testing.T) {
	t.Parallel()

	db := setupOrdersRepoDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := &models.Customer{Name: "Ana Souza", Email: "ana@example.com", TotalPoints: 50}
	require.NoError(t, db.Create(customer).Error)

	require.NoError(t, repo.AdjustCustomerPoints(ctx, customer.ID, 25))
	require.NoError(t, repo.AdjustCustomerPoints(ctx, customer.ID, -75))

	// A debit past zero must not touch the row.
	err := repo.AdjustCustomerPoints(ctx, customer.ID, -1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	assert.Equal(t, 0, reloaded.TotalPoints)
}
