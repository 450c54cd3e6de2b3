package ports

import (
	"context"
	"errors"

	"github.com/openretail/pos-api-server/internal/domains/catalog/domain"
)

// ErrNotFound indicates the product does not exist in the repository.
var ErrNotFound = errors.New("product not found")

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	NamePrefix    string
	Category      string
	AvailableOnly bool
	Page          int
	PageSize      int
}

// ProductPage is one page of a catalog listing plus the unpaged count.
type ProductPage struct {
	Items      []*domain.Product
	TotalCount int64
}

// Repository abstracts product persistence.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter Filter) (*ProductPage, error)
	Delete(ctx context.Context, id string) error
}
