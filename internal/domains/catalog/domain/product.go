package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidName  = errors.New("product name is required")
	ErrInvalidPrice = errors.New("product price must not be negative")
)

// UnitType distinguishes how a product is sold.
const (
	UnitTypeDiscrete = "discrete"
	UnitTypeWeight   = "weight"
	UnitTypeVolume   = "volume"
)

// Product is a sellable catalog entry. LowerName is a derived field kept
// alongside Name so prefix searches stay index friendly.
type Product struct {
	ID               string
	Name             string
	LowerName        string
	Description      string
	Image            string
	Price            float64
	SKU              string
	Barcode          string
	Category         string
	StockQuantity    int
	UnitType         string
	Unit             string
	UnitValue        float64
	TaxRate          float64
	IsAvailable      bool
	IsPartialAllowed bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Normalize derives LowerName and defaults the unit type.
func (p *Product) Normalize() {
	p.LowerName = strings.ToLower(strings.TrimSpace(p.Name))
	if p.UnitType == "" {
		p.UnitType = UnitTypeDiscrete
	}
}

// Validate checks the invariants a product must hold before persistence.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Clone returns a copy safe to cache or hand across goroutines.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
