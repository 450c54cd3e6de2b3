package domain

import (
	"errors"
	"strconv"
	"time"
)

// Status enumerates order progression. The mixed casing ("draft" vs
// "Pending") matches the values the legacy persistence layer already
// stores; do not normalize without migrating stored orders.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "Pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidLineItem = errors.New("line item has no resolvable product reference")
	ErrEmptyCart       = errors.New("cart has no line items")
)

// ProductRef is the snapshot of a catalog product a line item holds.
// The cart references products, it never owns them.
type ProductRef struct {
	ID               string
	Name             string
	Price            float64
	TaxRate          float64
	UnitType         string
	UnitValue        float64
	Image            string
	IsAvailable      bool
	IsPartialAllowed bool
}

// LineItem is one product's contribution to a cart. Exactly one of
// Quantity (discrete products) or Size (partial-sale products) carries
// the amount, decided by the product's partial-sale flag at merge time.
type LineItem struct {
	Product   *ProductRef
	ProductID string
	Name      string
	Price     float64
	Quantity  int
	Size      string
	Tax       float64
	Discount  float64
	Total     float64
}

// Key returns the merge lookup key: the direct product id with a
// fallback to the referenced product's id for older payloads.
func (li LineItem) Key() string {
	if li.ProductID != "" {
		return li.ProductID
	}
	if li.Product != nil {
		return li.Product.ID
	}
	return ""
}

// Cart is the order aggregate root: "cart" while being edited, "order"
// once persisted with a status.
type Cart struct {
	ID             string
	OrderNumber    string
	Items          []LineItem
	Subtotal       float64
	TaxAmount      float64
	DiscountAmount float64
	TotalAmount    float64
	PaymentMethod  string
	CustomerName   string
	Notes          string
	CartDate       string
	IsTakeaway     bool
	IsDraft        bool
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Merge folds an incoming selection into the line items, combining with
// an existing item for the same product when present.
//
// Partial-sale items accumulate size (decimal string) and total.
// Discrete items accumulate quantity and recompute the total from the
// live unit price, so re-adding the same selection converges instead of
// drifting.
func Merge(items []LineItem, incoming LineItem) ([]LineItem, error) {
	if incoming.Product == nil {
		return items, ErrInvalidLineItem
	}
	key := incoming.Key()
	for i := range items {
		if items[i].Key() != key {
			continue
		}
		existing := &items[i]
		if incoming.Product.IsPartialAllowed {
			existing.Size = addSizes(existing.Size, incoming.Size)
			existing.Total += incoming.Total
		} else {
			existing.Quantity += incoming.Quantity
			existing.Total = float64(existing.Quantity) * incoming.Product.Price
		}
		return items, nil
	}

	item := LineItem{
		Product:   incoming.Product,
		ProductID: incoming.Product.ID,
		Name:      incoming.Product.Name,
		Price:     incoming.Product.Price,
		Quantity:  incoming.Quantity,
		Total:     incoming.Total,
		Size:      incoming.Size,
	}
	if item.Size == "" {
		item.Size = "0"
	}
	if incoming.Product.TaxRate != 0 {
		item.Tax = incoming.Product.TaxRate / 100 * incoming.Product.Price
	}
	return append(items, item), nil
}

// Totals derives the aggregate amounts from line items. Pure; callers
// write the results back onto the cart. The grand total is subtotal
// minus tax, matching what the billing side of the business expects
// from this system today.
func Totals(items []LineItem) (subtotal, tax, total float64) {
	for _, item := range items {
		subtotal += item.Total
		tax += item.Tax
	}
	return subtotal, tax, subtotal - tax
}

// AddItem merges the incoming selection and refreshes the aggregate
// amounts. A merge is never complete without the totals refresh.
func (c *Cart) AddItem(incoming LineItem) error {
	items, err := Merge(c.Items, incoming)
	if err != nil {
		return err
	}
	c.Items = items
	c.Recompute()
	return nil
}

// Recompute refreshes subtotal, tax, and grand total from the line
// items. Discount is externally supplied and left untouched.
func (c *Cart) Recompute() {
	c.Subtotal, c.TaxAmount, c.TotalAmount = Totals(c.Items)
}

// RemoveItem drops the line item for the given product key.
func (c *Cart) RemoveItem(key string) bool {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recompute()
			return true
		}
	}
	return false
}

// AdjustQuantity shifts a discrete item's quantity by delta, recomputing
// its total from the unit price. The item is removed when the quantity
// drops to zero or below.
func (c *Cart) AdjustQuantity(key string, delta int) bool {
	for i := range c.Items {
		if c.Items[i].Key() != key {
			continue
		}
		item := &c.Items[i]
		item.Quantity += delta
		if item.Quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			item.Total = float64(item.Quantity) * item.Price
		}
		c.Recompute()
		return true
	}
	return false
}

// Empty reports whether the cart has no line items.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// StripImages clears product image payloads before persistence so order
// documents stay small; images are never part of the order of record.
func (c *Cart) StripImages() {
	for i := range c.Items {
		if c.Items[i].Product != nil {
			ref := *c.Items[i].Product
			ref.Image = ""
			c.Items[i].Product = &ref
		}
	}
}

// Clone returns a deep copy safe to hand across goroutine boundaries.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = make([]LineItem, len(c.Items))
	copy(clone.Items, c.Items)
	for i := range clone.Items {
		if clone.Items[i].Product != nil {
			ref := *clone.Items[i].Product
			clone.Items[i].Product = &ref
		}
	}
	return &clone
}

func addSizes(existing, incoming string) string {
	a, _ := strconv.ParseFloat(orZero(existing), 64)
	b, _ := strconv.ParseFloat(orZero(incoming), 64)
	return strconv.FormatFloat(a+b, 'f', -1, 64)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
