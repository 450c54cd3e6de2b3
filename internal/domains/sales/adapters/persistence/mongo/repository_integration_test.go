//go:build integration

package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
	platformmongo "github.com/openretail/pos-api-server/internal/platform/mongo"
)

func setupMongoRepository(t *testing.T) (*Repository, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := platformmongo.Connect(ctx, uri, "pos_test")
	require.NoError(t, err)

	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Client().Disconnect(disconnectCtx)
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return NewRepository(db), cleanup
}

func sampleDraft(number string, createdAt time.Time) *domain.Cart {
	return &domain.Cart{
		OrderNumber: number,
		Status:      domain.StatusDraft,
		IsDraft:     true,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Items: []domain.LineItem{
			{
				ProductID: "p-beans",
				Name:      "Coffee Beans",
				Price:     20,
				Size:      "250",
				Total:     5,
				Product:   &domain.ProductRef{ID: "p-beans", Name: "Coffee Beans", Price: 20, IsPartialAllowed: true},
			},
		},
		Subtotal:    5,
		TotalAmount: 5,
	}
}

func TestRepository_OrderDocumentRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	repo, cleanup := setupMongoRepository(t)
	defer cleanup()
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, sampleDraft("100", time.Now().UTC().Truncate(time.Millisecond)))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := repo.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", fetched.OrderNumber)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "250", fetched.Items[0].Size)
	require.NotNil(t, fetched.Items[0].Product)
	assert.True(t, fetched.Items[0].Product.IsPartialAllowed)

	_, err = repo.GetOrder(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateAndDeleteOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	repo, cleanup := setupMongoRepository(t)
	defer cleanup()
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, sampleDraft("100", time.Now().UTC()))
	require.NoError(t, err)

	completed := created.Clone()
	completed.IsDraft = false
	completed.Status = domain.StatusCompleted
	updated, err := repo.UpdateOrder(ctx, created.ID, completed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	_, err = repo.UpdateOrder(ctx, "missing", completed)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, repo.DeleteOrder(ctx, created.ID))
	assert.ErrorIs(t, repo.DeleteOrder(ctx, created.ID), ports.ErrNotFound)
}

func TestRepository_ListOrdersByStatusAndDate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	repo, cleanup := setupMongoRepository(t)
	defer cleanup()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		order := sampleDraft("10"+string(rune('0'+i)), base.Add(time.Duration(i)*time.Hour))
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

	inDay, err := repo.ListOrders(ctx, domain.Filter{
		domain.FilterStartDate: "2026-03-01",
		domain.FilterEndDate:   "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), inDay.TotalCount)

	paged, err := repo.ListOrders(ctx, domain.Filter{
		domain.FilterPage:     "1",
		domain.FilterPageSize: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), paged.TotalCount)
	assert.Len(t, paged.Items, 2)
	// Newest first.
	assert.Equal(t, "102", paged.Items[0].OrderNumber)
}

func TestRepository_SequenceDocument(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	repo, cleanup := setupMongoRepository(t)
	defer cleanup()
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
	assert.Equal(t, "101", loaded.Value)
}
