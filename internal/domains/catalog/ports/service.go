package ports

import (
	"context"

	"github.com/openretail/pos-api-server/internal/domains/catalog/domain"
)

// Service exposes the catalog use cases.
type Service interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter Filter) (*ProductPage, error)
	DeleteProduct(ctx context.Context, id string) error
}
