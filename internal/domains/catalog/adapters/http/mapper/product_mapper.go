package mapper

import (
	"time"

	"github.com/openretail/pos-api-server/internal/domains/catalog/domain"
	"github.com/openretail/pos-api-server/internal/domains/catalog/ports"
)

// Product is the wire representation the storefront exchanges.
type Product struct {
	ID               string     `json:"id,omitempty"`
	Name             string     `json:"name"`
	LowerCaseName    string     `json:"lowerCaseName,omitempty"`
	Description      string     `json:"description,omitempty"`
	Image            string     `json:"image,omitempty"`
	Price            float64    `json:"price"`
	SKU              string     `json:"sku,omitempty"`
	Barcode          string     `json:"barcode,omitempty"`
	Category         string     `json:"category,omitempty"`
	StockQuantity    int        `json:"stockQuantity,omitempty"`
	UnitType         string     `json:"unitType"`
	Unit             string     `json:"unit,omitempty"`
	UnitValue        float64    `json:"unitValue,omitempty"`
	TaxRate          float64    `json:"taxRate,omitempty"`
	IsAvailable      bool       `json:"isAvailable"`
	IsPartialAllowed bool       `json:"isPartialAllowed"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// ProductList is a paged listing envelope.
type ProductList struct {
	Items      []Product `json:"items"`
	TotalCount int64     `json:"totalCount"`
}

// ToDomain converts a wire product to the domain model.
func ToDomain(p Product) *domain.Product {
	product := &domain.Product{
		ID:               p.ID,
		Name:             p.Name,
		LowerName:        p.LowerCaseName,
		Description:      p.Description,
		Image:            p.Image,
		Price:            p.Price,
		SKU:              p.SKU,
		Barcode:          p.Barcode,
		Category:         p.Category,
		StockQuantity:    p.StockQuantity,
		UnitType:         p.UnitType,
		Unit:             p.Unit,
		UnitValue:        p.UnitValue,
		TaxRate:          p.TaxRate,
		IsAvailable:      p.IsAvailable,
		IsPartialAllowed: p.IsPartialAllowed,
	}
	if p.CreatedAt != nil {
		product.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		product.UpdatedAt = *p.UpdatedAt
	}
	return product
}

// FromDomain converts a domain product to its wire representation.
func FromDomain(product *domain.Product) Product {
	p := Product{
		ID:               product.ID,
		Name:             product.Name,
		LowerCaseName:    product.LowerName,
		Description:      product.Description,
		Image:            product.Image,
		Price:            product.Price,
		SKU:              product.SKU,
		Barcode:          product.Barcode,
		Category:         product.Category,
		StockQuantity:    product.StockQuantity,
		UnitType:         product.UnitType,
		Unit:             product.Unit,
		UnitValue:        product.UnitValue,
		TaxRate:          product.TaxRate,
		IsAvailable:      product.IsAvailable,
		IsPartialAllowed: product.IsPartialAllowed,
	}
	if !product.CreatedAt.IsZero() {
		created := product.CreatedAt
		p.CreatedAt = &created
	}
	if !product.UpdatedAt.IsZero() {
		updated := product.UpdatedAt
		p.UpdatedAt = &updated
	}
	return p
}

// FromDomainPage converts a repository page into the wire envelope.
func FromDomainPage(page *ports.ProductPage) ProductList {
	if page == nil {
		return ProductList{Items: []Product{}}
	}
	items := make([]Product, 0, len(page.Items))
	for _, product := range page.Items {
		items = append(items, FromDomain(product))
	}
	return ProductList{Items: items, TotalCount: page.TotalCount}
}
