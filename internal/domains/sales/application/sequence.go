package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

// DefaultSequenceStart seeds the counter on first use when no starting
// value is configured.
const DefaultSequenceStart = "100"

// SequenceAllocator hands out human-readable order numbers from the
// shared counter record.
//
// Allocation is read-increment-write with no compare-and-swap: two
// tills completing orders at the same instant can be assigned the same
// number. That matches the behavior of the system this replaces and is
// accepted until the counter moves to an atomic database sequence.
type SequenceAllocator struct {
	repo  ports.Repository
	start string
}

func NewSequenceAllocator(repo ports.Repository, start string) *SequenceAllocator {
	if start == "" {
		start = DefaultSequenceStart
	}
	return &SequenceAllocator{repo: repo, start: start}
}

// Allocate returns the next order number, creating and seeding the
// counter record on first use. The seed value itself is the first
// assigned number; only subsequent allocations increment.
func (a *SequenceAllocator) Allocate(ctx context.Context) (string, error) {
	current, err := a.repo.LoadSequence(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			seeded, err := a.repo.SaveSequence(ctx, &domain.OrderSequence{Value: a.start})
			if err != nil {
				return "", fmt.Errorf("seed order sequence: %w", err)
			}
			return seeded.Value, nil
		}
		return "", fmt.Errorf("load order sequence: %w", err)
	}

	next, err := current.Next()
	if err != nil {
		return "", err
	}
	next.ID = current.ID
	saved, err := a.repo.SaveSequence(ctx, &next)
	if err != nil {
		return "", fmt.Errorf("advance order sequence: %w", err)
	}
	return saved.Value, nil
}
