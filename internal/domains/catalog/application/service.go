package application

import (
	"context"
	"time"

	"github.com/openretail/pos-api-server/internal/domains/catalog/domain"
	"github.com/openretail/pos-api-server/internal/domains/catalog/ports"
)

// Service implements the catalog use cases on top of a repository.
type Service struct {
	repo ports.Repository
}

// NewService wires a catalog service.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct validates, normalizes, and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	product.Normalize()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProduct validates and replaces an existing product.
func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	product.Normalize()
	product.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetProduct loads a product by id.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts returns a page of products matching the filter.
func (s *Service) ListProducts(ctx context.Context, filter ports.Filter) (*ports.ProductPage, error) {
	return s.repo.List(ctx, filter)
}

// DeleteProduct removes a product by id.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
