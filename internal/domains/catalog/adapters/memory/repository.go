package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/openretail/pos-api-server/internal/domains/catalog/domain"
	"github.com/openretail/pos-api-server/internal/domains/catalog/ports"
)

// Repository is an in-memory catalog store for tests and dev fallback.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

// NewRepository builds an empty in-memory catalog.
func NewRepository() *Repository {
	return &Repository{products: make(map[string]*domain.Product)}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := product.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.products[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *Repository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	stored := product.Clone()
	r.products[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return product.Clone(), nil
}

func (r *Repository) List(_ context.Context, filter ports.Filter) (*ports.ProductPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Product, 0, len(r.products))
	prefix := strings.ToLower(filter.NamePrefix)
	for _, product := range r.products {
		if prefix != "" && !strings.HasPrefix(product.LowerName, prefix) {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.AvailableOnly && !product.IsAvailable {
			continue
		}
		matched = append(matched, product.Clone())
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].LowerName < matched[j].LowerName
	})

	total := int64(len(matched))
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		if offset >= len(matched) {
			matched = nil
		} else {
			end := offset + filter.PageSize
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[offset:end]
		}
	}
	return &ports.ProductPage{Items: matched, TotalCount: total}, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

var _ ports.Repository = (*Repository)(nil)
