package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

var _ ports.Repository = (*Repository)(nil)

const (
	ordersCollection   = "orders"
	sequenceCollection = "order_sequence"
)

// Repository persists orders as MongoDB documents: the document mode of
// the dual-mode persistence layer.
type Repository struct {
	orders   *mongo.Collection
	sequence *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		orders:   db.Collection(ordersCollection),
		sequence: db.Collection(sequenceCollection),
	}
}

type orderDocument struct {
	ID             string         `bson:"_id"`
	OrderNumber    string         `bson:"order_number,omitempty"`
	Items          []itemDocument `bson:"items"`
	Subtotal       float64        `bson:"subtotal"`
	TaxAmount      float64        `bson:"tax_amount"`
	DiscountAmount float64        `bson:"discount_amount"`
	TotalAmount    float64        `bson:"total_amount"`
	PaymentMethod  string         `bson:"payment_method,omitempty"`
	CustomerName   string         `bson:"customer_name,omitempty"`
	Notes          string         `bson:"notes,omitempty"`
	CartDate       string         `bson:"cart_date,omitempty"`
	IsTakeaway     bool           `bson:"is_takeaway"`
	IsDraft        bool           `bson:"is_draft"`
	Status         string         `bson:"order_status,omitempty"`
	CreatedAt      time.Time      `bson:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at"`
}

type itemDocument struct {
	ProductID string              `bson:"product_id"`
	Product   *productRefDocument `bson:"product,omitempty"`
	Name      string              `bson:"name"`
	Price     float64             `bson:"price"`
	Quantity  int                 `bson:"quantity"`
	Size      string              `bson:"size,omitempty"`
	Tax       float64             `bson:"tax,omitempty"`
	Discount  float64             `bson:"discount,omitempty"`
	Total     float64             `bson:"total"`
}

type productRefDocument struct {
	ID               string  `bson:"id"`
	Name             string  `bson:"name"`
	Price            float64 `bson:"price"`
	TaxRate          float64 `bson:"tax_rate,omitempty"`
	UnitType         string  `bson:"unit_type,omitempty"`
	UnitValue        float64 `bson:"unit_value,omitempty"`
	IsAvailable      bool    `bson:"is_available"`
	IsPartialAllowed bool    `bson:"is_partial_allowed"`
}

type sequenceDocument struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

func (r *Repository) CreateOrder(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	doc := toDocument(cart)
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if _, err := r.orders.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return r.GetOrder(ctx, doc.ID)
}

func (r *Repository) UpdateOrder(ctx context.Context, id string, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	doc := toDocument(cart)
	doc.ID = id
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}
	result, err := r.orders.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return nil, fmt.Errorf("replace order: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetOrder(ctx, id)
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*domain.Cart, error) {
	var doc orderDocument
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return doc.toDomain(), nil
}

// ListOrders translates the filter map into a bson query. Unknown keys
// pass through as field equality, the same duck-typed contract the
// document store always honored.
func (r *Repository) ListOrders(ctx context.Context, filter domain.Filter) (*ports.OrderPage, error) {
	query := translateFilter(filter)

	total, err := r.orders.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if size, ok := filter.PageSize(); ok {
		findOpts = findOpts.
			SetSkip(int64(filter.Page()-1) * int64(size)).
			SetLimit(int64(size))
	}
	cursor, err := r.orders.Find(ctx, query, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Cart
	for cursor.Next(ctx) {
		var doc orderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return &ports.OrderPage{Items: items, TotalCount: total}, nil
}

func (r *Repository) DeleteOrder(ctx context.Context, id string) error {
	result, err := r.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) LoadSequence(ctx context.Context) (*domain.OrderSequence, error) {
	var doc sequenceDocument
	err := r.sequence.FindOne(ctx, bson.M{}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("load sequence: %w", err)
	}
	return &domain.OrderSequence{ID: doc.ID, Value: doc.Value}, nil
}

func (r *Repository) SaveSequence(ctx context.Context, seq *domain.OrderSequence) (*domain.OrderSequence, error) {
	if seq == nil {
		return nil, errors.New("sequence is nil")
	}
	doc := sequenceDocument{ID: seq.ID, Value: seq.Value}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.sequence.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return nil, fmt.Errorf("save sequence: %w", err)
	}
	return &domain.OrderSequence{ID: doc.ID, Value: doc.Value}, nil
}

func translateFilter(filter domain.Filter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if number, ok := filter.OrderNumber(); ok {
		query["order_number"] = primitive.Regex{Pattern: "^" + regexEscape(number)}
	}
	created := bson.M{}
	if start, ok := filter.StartDate(); ok {
		created["$gte"] = start
	}
	if end, ok := filter.EndDate(); ok {
		created["$lte"] = end
	}
	if len(created) > 0 {
		query["created_at"] = created
	}
	if status, ok := filter.Status(); ok {
		query["order_status"] = string(status)
	}
	for key, value := range filter.Extra() {
		query[key] = value
	}
	return query
}

func regexEscape(s string) string {
	escaped := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '.', '^', '$', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|', '\\':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	return string(escaped)
}

func toDocument(cart *domain.Cart) orderDocument {
	doc := orderDocument{
		ID:             cart.ID,
		OrderNumber:    cart.OrderNumber,
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
		Status:         string(cart.Status),
		CreatedAt:      cart.CreatedAt,
		UpdatedAt:      cart.UpdatedAt,
	}
	doc.Items = make([]itemDocument, 0, len(cart.Items))
	for _, item := range cart.Items {
		itemDoc := itemDocument{
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
			itemDoc.Product = &productRefDocument{
				ID:               item.Product.ID,
				Name:             item.Product.Name,
				Price:            item.Product.Price,
				TaxRate:          item.Product.TaxRate,
				UnitType:         item.Product.UnitType,
				UnitValue:        item.Product.UnitValue,
				IsAvailable:      item.Product.IsAvailable,
				IsPartialAllowed: item.Product.IsPartialAllowed,
			}
		}
		doc.Items = append(doc.Items, itemDoc)
	}
	return doc
}

func (d orderDocument) toDomain() *domain.Cart {
	cart := &domain.Cart{
		ID:             d.ID,
		OrderNumber:    d.OrderNumber,
		Subtotal:       d.Subtotal,
		TaxAmount:      d.TaxAmount,
		DiscountAmount: d.DiscountAmount,
		TotalAmount:    d.TotalAmount,
		PaymentMethod:  d.PaymentMethod,
		CustomerName:   d.CustomerName,
		Notes:          d.Notes,
		CartDate:       d.CartDate,
		IsTakeaway:     d.IsTakeaway,
		IsDraft:        d.IsDraft,
		Status:         domain.Status(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	cart.Items = make([]domain.LineItem, 0, len(d.Items))
	for _, itemDoc := range d.Items {
		item := domain.LineItem{
			ProductID: itemDoc.ProductID,
			Name:      itemDoc.Name,
			Price:     itemDoc.Price,
			Quantity:  itemDoc.Quantity,
			Size:      itemDoc.Size,
			Tax:       itemDoc.Tax,
			Discount:  itemDoc.Discount,
			Total:     itemDoc.Total,
		}
		if itemDoc.Product != nil {
			item.Product = &domain.ProductRef{
				ID:               itemDoc.Product.ID,
				Name:             itemDoc.Product.Name,
				Price:            itemDoc.Product.Price,
				TaxRate:          itemDoc.Product.TaxRate,
				UnitType:         itemDoc.Product.UnitType,
				UnitValue:        itemDoc.Product.UnitValue,
				IsAvailable:      itemDoc.Product.IsAvailable,
				IsPartialAllowed: itemDoc.Product.IsPartialAllowed,
			}
		}
		cart.Items = append(cart.Items, item)
	}
	return cart
}
