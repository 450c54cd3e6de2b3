package mapper

import (
	"net/url"
	"time"

	salesdomain "github.com/openretail/pos-api-server/internal/domains/sales/domain"
)

// Order is the transport-layer shape of a cart/order. Field names match
// the payloads the SPA and the remote orders API already exchange.
type Order struct {
	ID             string     `json:"id,omitempty"`
	OrderID        string     `json:"orderId,omitempty"`
	OrderItems     []LineItem `json:"orderItems"`
	Subtotal       float64    `json:"subtotal"`
	TaxAmount      float64    `json:"taxAmount"`
	DiscountAmount float64    `json:"discountAmount"`
	TotalAmount    float64    `json:"totalAmount"`
	PaymentMethod  string     `json:"paymentMethod,omitempty"`
	CustomerName   string     `json:"customerName,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CartDate       string     `json:"cartDate,omitempty"`
	IsTakeaway     bool       `json:"isTakeaway"`
	IsDraft        bool       `json:"isDraft"`
	OrderStatus    string     `json:"orderStatus,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// LineItem is one product's contribution on the wire.
type LineItem struct {
	Product   *ProductRef `json:"product,omitempty"`
	ProductID string      `json:"productId,omitempty"`
	Name      string      `json:"name,omitempty"`
	Price     float64     `json:"price"`
	Quantity  int         `json:"quantity"`
	Size      string      `json:"size,omitempty"`
	Tax       float64     `json:"tax,omitempty"`
	Discount  float64     `json:"discount,omitempty"`
	Total     float64     `json:"total"`
}

// ProductRef mirrors the catalog fields the cart needs.
type ProductRef struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	TaxRate          float64 `json:"taxRate,omitempty"`
	UnitType         string  `json:"unitType,omitempty"`
	UnitValue        float64 `json:"unitValue,omitempty"`
	Image            string  `json:"image,omitempty"`
	IsAvailable      bool    `json:"isAvailable"`
	IsPartialAllowed bool    `json:"isPartialAllowed"`
}

// ToDomainLineItem converts an incoming selection to the domain model.
func ToDomainLineItem(item LineItem) salesdomain.LineItem {
	out := salesdomain.LineItem{
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Tax:       item.Tax,
		Discount:  item.Discount,
		Total:     item.Total,
	}
	if item.Product != nil {
		out.Product = toDomainProductRef(*item.Product)
	}
	return out
}

// ToDomainOrder converts a transport order to the domain aggregate.
func ToDomainOrder(order Order) *salesdomain.Cart {
	cart := &salesdomain.Cart{
		ID:             order.ID,
		OrderNumber:    order.OrderID,
		Subtotal:       order.Subtotal,
		TaxAmount:      order.TaxAmount,
		DiscountAmount: order.DiscountAmount,
		TotalAmount:    order.TotalAmount,
		PaymentMethod:  order.PaymentMethod,
		CustomerName:   order.CustomerName,
		Notes:          order.Notes,
		CartDate:       order.CartDate,
		IsTakeaway:     order.IsTakeaway,
		IsDraft:        order.IsDraft,
		Status:         salesdomain.Status(order.OrderStatus),
	}
	if order.CreatedAt != nil {
		cart.CreatedAt = *order.CreatedAt
	}
	if order.UpdatedAt != nil {
		cart.UpdatedAt = *order.UpdatedAt
	}
	cart.Items = make([]salesdomain.LineItem, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		cart.Items = append(cart.Items, ToDomainLineItem(item))
	}
	return cart
}

// FromDomainOrder converts a domain cart to the transport shape.
func FromDomainOrder(cart *salesdomain.Cart) Order {
	if cart == nil {
		return Order{}
	}
	order := Order{
		ID:             cart.ID,
		OrderID:        cart.OrderNumber,
		Subtotal:       cart.Subtotal,
		TaxAmount:      cart.TaxAmount,
		DiscountAmount: cart.DiscountAmount,
		TotalAmount:    cart.TotalAmount,
		PaymentMethod:  cart.PaymentMethod,
		CustomerName:   cart.CustomerName,
		Notes:          cart.Notes,
		CartDate:       cart.CartDate,
		IsTakeaway:     cart.IsTakeaway,
		IsDraft:        cart.IsDraft,
		OrderStatus:    string(cart.Status),
	}
	if !cart.CreatedAt.IsZero() {
		created := cart.CreatedAt
		order.CreatedAt = &created
	}
	if !cart.UpdatedAt.IsZero() {
		updated := cart.UpdatedAt
		order.UpdatedAt = &updated
	}
	order.OrderItems = make([]LineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		wire := LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Tax:       item.Tax,
			Discount:  item.Discount,
			Total:     item.Total,
		}
		if item.Product != nil {
			wire.Product = fromDomainProductRef(item.Product)
		}
		order.OrderItems = append(order.OrderItems, wire)
	}
	return order
}

// FromDomainOrderList converts a slice of domain carts.
func FromDomainOrderList(carts []*salesdomain.Cart) []Order {
	orders := make([]Order, 0, len(carts))
	for _, cart := range carts {
		orders = append(orders, FromDomainOrder(cart))
	}
	return orders
}

// FilterFromQuery builds the open filter map from URL query parameters,
// first value wins per key.
func FilterFromQuery(values url.Values) salesdomain.Filter {
	filter := salesdomain.Filter{}
	for key := range values {
		if v := values.Get(key); v != "" {
			filter[key] = v
		}
	}
	return filter
}

// FilterToQuery renders the filter map back into query parameters for
// the remote orders API.
func FilterToQuery(filter salesdomain.Filter) url.Values {
	values := url.Values{}
	for key, value := range filter {
		values.Set(key, value)
	}
	return values
}

func toDomainProductRef(ref ProductRef) *salesdomain.ProductRef {
	return &salesdomain.ProductRef{
		ID:               ref.ID,
		Name:             ref.Name,
		Price:            ref.Price,
		TaxRate:          ref.TaxRate,
		UnitType:         ref.UnitType,
		UnitValue:        ref.UnitValue,
		Image:            ref.Image,
		IsAvailable:      ref.IsAvailable,
		IsPartialAllowed: ref.IsPartialAllowed,
	}
}

func fromDomainProductRef(ref *salesdomain.ProductRef) *ProductRef {
	return &ProductRef{
		ID:               ref.ID,
		Name:             ref.Name,
		Price:            ref.Price,
		TaxRate:          ref.TaxRate,
		UnitType:         ref.UnitType,
		UnitValue:        ref.UnitValue,
		Image:            ref.Image,
		IsAvailable:      ref.IsAvailable,
		IsPartialAllowed: ref.IsPartialAllowed,
	}
}
