//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
	"github.com/openretail/pos-api-server/internal/platform/migrations"
)

func setupSalesPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("pos_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func draftOrder(number string, createdAt time.Time) *domain.Cart {
	return &domain.Cart{
		OrderNumber: number,
		Status:      domain.StatusDraft,
		IsDraft:     true,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Items: []domain.LineItem{
			{ProductID: "p-espresso", Name: "Espresso", Price: 3.5, Quantity: 2, Total: 7},
		},
		Subtotal:    7,
		TotalAmount: 7,
	}
}

func TestRepository_CreateAndGetOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, draftOrder("100", time.Now().UTC()))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := repo.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", fetched.OrderNumber)
	assert.Equal(t, domain.StatusDraft, fetched.Status)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "p-espresso", fetched.Items[0].ProductID)
	assert.Equal(t, 7.0, fetched.Items[0].Total)
}

func TestRepository_UpdateOrderStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, draftOrder("100", time.Now().UTC()))
	require.NoError(t, err)

	completed := created.Clone()
	completed.IsDraft = false
	completed.Status = domain.StatusCompleted
	updated, err := repo.UpdateOrder(ctx, created.ID, completed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.False(t, updated.IsDraft)

	_, err = repo.UpdateOrder(ctx, "00000000-0000-0000-0000-000000000000", completed)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListOrders_FilterAndPaginate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		order := draftOrder("10"+string(rune('0'+i)), base.Add(time.Duration(i)*time.Hour))
		if i > 0 {
			order.Status = domain.StatusCompleted
			order.IsDraft = false
		}
		_, err := repo.CreateOrder(ctx, order)
		require.NoError(t, err)
	}

	completed, err := repo.ListOrders(ctx, domain.Filter{domain.FilterStatus: "completed"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), completed.TotalCount)

	byNumber, err := repo.ListOrders(ctx, domain.Filter{domain.FilterOrderNumber: "101"})
	require.NoError(t, err)
	require.Len(t, byNumber.Items, 1)
	assert.Equal(t, "101", byNumber.Items[0].OrderNumber)

	inDay, err := repo.ListOrders(ctx, domain.Filter{
		domain.FilterStartDate: "2026-03-01",
		domain.FilterEndDate:   "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), inDay.TotalCount)

	paged, err := repo.ListOrders(ctx, domain.Filter{
		domain.FilterPage:     "2",
		domain.FilterPageSize: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), paged.TotalCount)
	assert.Len(t, paged.Items, 1)
}

func TestRepository_DeleteOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, draftOrder("100", time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOrder(ctx, created.ID))
	_, err = repo.GetOrder(ctx, created.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_SequencePersistence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.LoadSequence(ctx)
	require.ErrorIs(t, err, ports.ErrNotFound)

	saved, err := repo.SaveSequence(ctx, &domain.OrderSequence{Value: "100"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	advanced, err := saved.Next()
	require.NoError(t, err)
	advanced.ID = saved.ID
	_, err = repo.SaveSequence(ctx, &advanced)
	require.NoError(t, err)

	loaded, err := repo.LoadSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, "101", loaded.Value)
}
