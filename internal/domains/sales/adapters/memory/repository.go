package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter, used for tests
// and as the dev fallback when no database is configured.
type Repository struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Cart
	sequence *domain.OrderSequence
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Cart{}}
}

func (r *Repository) CreateOrder(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	clone := cart.Clone()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) UpdateOrder(_ context.Context, id string, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := cart.Clone()
	clone.ID = id
	r.orders[id] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetOrder(_ context.Context, id string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cart.Clone(), nil
}

// ListOrders evaluates the filter in memory: recognized criteria via
// the domain reference semantics, newest first, paginated when asked.
func (r *Repository) ListOrders(_ context.Context, filter domain.Filter) (*ports.OrderPage, error) {
	r.mu.RLock()
	matched := make([]*domain.Cart, 0, len(r.orders))
	for _, cart := range r.orders {
		if filter == nil || filter.Matches(cart) {
			matched = append(matched, cart.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	page := &ports.OrderPage{TotalCount: int64(len(matched))}
	if size, ok := filter.PageSize(); ok {
		offset := (filter.Page() - 1) * size
		if offset >= len(matched) {
			page.Items = []*domain.Cart{}
			return page, nil
		}
		end := offset + size
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[offset:end]
	}
	page.Items = matched
	return page, nil
}

func (r *Repository) DeleteOrder(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *Repository) LoadSequence(_ context.Context) (*domain.OrderSequence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.sequence == nil {
		return nil, ports.ErrNotFound
	}
	clone := *r.sequence
	return &clone, nil
}

func (r *Repository) SaveSequence(_ context.Context, seq *domain.OrderSequence) (*domain.OrderSequence, error) {
	if seq == nil {
		return nil, errors.New("sequence is nil")
	}
	clone := *seq
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequence = &clone
	out := clone
	return &out, nil
}
