package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

func TestRepository_OrderRoundTrip(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, &domain.Cart{
		Status: domain.StatusDraft,
		Items:  []domain.LineItem{{ProductID: "p1", Quantity: 2, Total: 7}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := repo.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
	require.Len(t, fetched.Items, 1)

	// Stored state is isolated from caller mutations.
	fetched.Items[0].Quantity = 99
	again, err := repo.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 2, again.Items[0].Quantity)
}

func TestRepository_UpdateMissingOrder(t *testing.T) {
	repo := NewRepository()

	_, err := repo.UpdateOrder(context.Background(), "missing", &domain.Cart{})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DeleteOrder(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, &domain.Cart{Status: domain.StatusCompleted})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOrder(ctx, created.ID))
	_, err = repo.GetOrder(ctx, created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, repo.DeleteOrder(ctx, created.ID), ports.ErrNotFound)
}

func TestRepository_ListOrdersFiltersAndPaginates(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, status := range []domain.Status{domain.StatusDraft, domain.StatusCompleted, domain.StatusCompleted} {
		_, err := repo.CreateOrder(ctx, &domain.Cart{
			OrderNumber: "10" + string(rune('0'+i)),
			Status:      status,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	page, err := repo.ListOrders(ctx, domain.Filter{domain.FilterStatus: "completed"})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.TotalCount)
	// Newest first.
	require.Equal(t, "102", page.Items[0].OrderNumber)

	paged, err := repo.ListOrders(ctx, domain.Filter{
		domain.FilterPage:     "2",
		domain.FilterPageSize: "2",
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), paged.TotalCount)
	require.Len(t, paged.Items, 1)

	beyond, err := repo.ListOrders(ctx, domain.Filter{
		domain.FilterPage:     "5",
		domain.FilterPageSize: "2",
	})
	require.NoError(t, err)
	require.Empty(t, beyond.Items)
}

func TestRepository_SequenceRoundTrip(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.LoadSequence(ctx)
	require.ErrorIs(t, err, ports.ErrNotFound)

	saved, err := repo.SaveSequence(ctx, &domain.OrderSequence{Value: "100"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	loaded, err := repo.LoadSequence(ctx)
	require.NoError(t, err)
	require.Equal(t, saved.ID, loaded.ID)
	require.Equal(t, "100", loaded.Value)
}
