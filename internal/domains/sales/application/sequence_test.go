package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	salesmemory "github.com/openretail/pos-api-server/internal/domains/sales/adapters/memory"
	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
)

func TestSequenceAllocator_SeedsOnFirstUse(t *testing.T) {
	repo := salesmemory.NewRepository()
	allocator := NewSequenceAllocator(repo, "500")

	// The seed value itself is the first assigned number.
	number, err := allocator.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "500", number)

	number, err = allocator.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "501", number)
}

func TestSequenceAllocator_DefaultStart(t *testing.T) {
	allocator := NewSequenceAllocator(salesmemory.NewRepository(), "")

	number, err := allocator.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, DefaultSequenceStart, number)
}

func TestSequenceAllocator_AdvancesExistingCounter(t *testing.T) {
	repo := salesmemory.NewRepository()
	seeded, err := repo.SaveSequence(context.Background(), &domain.OrderSequence{Value: "774"})
	require.NoError(t, err)

	allocator := NewSequenceAllocator(repo, "100")
	number, err := allocator.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "775", number)

	current, err := repo.LoadSequence(context.Background())
	require.NoError(t, err)
	require.Equal(t, seeded.ID, current.ID)
	require.Equal(t, "775", current.Value)
}

func TestSequenceAllocator_BadStoredValue(t *testing.T) {
	repo := salesmemory.NewRepository()
	_, err := repo.SaveSequence(context.Background(), &domain.OrderSequence{Value: "oops"})
	require.NoError(t, err)

	_, err = NewSequenceAllocator(repo, "100").Allocate(context.Background())
	require.ErrorIs(t, err, domain.ErrBadSequenceValue)
}
