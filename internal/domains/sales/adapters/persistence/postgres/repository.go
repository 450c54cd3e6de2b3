package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &sequenceRecord{})
	}
	return repo
}

// orderRecord maps the cart aggregate to a relational row. Line items
// are stored as a JSON column: they are only ever read back as part of
// the whole order, never queried individually.
type orderRecord struct {
	ID             string       `gorm:"primaryKey;column:id;type:varchar(64)"`
	OrderNumber    string       `gorm:"column:order_number;type:varchar(32);index"`
	Items          []itemRecord `gorm:"column:items;serializer:json;type:jsonb"`
	Subtotal       float64      `gorm:"column:subtotal"`
	TaxAmount      float64      `gorm:"column:tax_amount"`
	DiscountAmount float64      `gorm:"column:discount_amount"`
	TotalAmount    float64      `gorm:"column:total_amount"`
	PaymentMethod  string       `gorm:"column:payment_method;type:varchar(32)"`
	CustomerName   string       `gorm:"column:customer_name"`
	Notes          string       `gorm:"column:notes"`
	CartDate       string       `gorm:"column:cart_date;type:varchar(10)"`
	IsTakeaway     bool         `gorm:"column:is_takeaway"`
	IsDraft        bool         `gorm:"column:is_draft;index"`
	Status         string       `gorm:"column:order_status;type:varchar(32);index"`
	CreatedAt      time.Time    `gorm:"column:created_at;index"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type itemRecord struct {
	ProductID   string             `json:"productId"`
	Product     *productRefRecord  `json:"product,omitempty"`
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	Quantity    int                `json:"quantity"`
	Size        string             `json:"size,omitempty"`
	Tax         float64            `json:"tax,omitempty"`
	Discount    float64            `json:"discount,omitempty"`
	Total       float64            `json:"total"`
}

type productRefRecord struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	TaxRate          float64 `json:"taxRate,omitempty"`
	UnitType         string  `json:"unitType,omitempty"`
	UnitValue        float64 `json:"unitValue,omitempty"`
	IsAvailable      bool    `json:"isAvailable"`
	IsPartialAllowed bool    `json:"isPartialAllowed"`
}

// sequenceRecord is the single shared order-number counter row.
type sequenceRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Value     string    `gorm:"column:value;type:varchar(32)"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sequenceRecord) TableName() string { return "order_sequences" }

// CreateOrder inserts a new order, minting an identifier when the cart
// carries none.
func (r *Repository) CreateOrder(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	record := toRecord(cart)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, record.ID)
}

// UpdateOrder overwrites an existing order.
func (r *Repository) UpdateOrder(ctx context.Context, id string, cart *domain.Cart) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	record := toRecord(cart)
	record.ID = id
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", id).
		Select("*").Omit("id", "created_at").
		Updates(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetOrder(ctx, id)
}

// GetOrder fetches an order by identifier.
func (r *Repository) GetOrder(ctx context.Context, id string) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListOrders translates the filter map into a WHERE clause and returns
// the requested page, newest first.
func (r *Repository) ListOrders(ctx context.Context, filter domain.Filter) (*ports.OrderPage, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := applyFilter(r.db.WithContext(ctx).Model(&orderRecord{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	query = query.Order("created_at DESC")
	if size, ok := filter.PageSize(); ok {
		query = query.Limit(size).Offset((filter.Page() - 1) * size)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Cart, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return &ports.OrderPage{Items: items, TotalCount: total}, nil
}

// DeleteOrder removes an order by identifier.
func (r *Repository) DeleteOrder(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// LoadSequence reads the shared counter row.
func (r *Repository) LoadSequence(ctx context.Context) (*domain.OrderSequence, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record sequenceRecord
	if err := r.db.WithContext(ctx).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &domain.OrderSequence{ID: record.ID, Value: record.Value}, nil
}

// SaveSequence writes the counter row back. Plain read-then-write, no
// row lock: the allocator documents the duplicate-number race.
func (r *Repository) SaveSequence(ctx context.Context, seq *domain.OrderSequence) (*domain.OrderSequence, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if seq == nil {
		return nil, errors.New("sequence is nil")
	}
	record := sequenceRecord{ID: seq.ID, Value: seq.Value}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return &domain.OrderSequence{ID: record.ID, Value: record.Value}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres sales repository not configured")
	}
	return nil
}

func applyFilter(query *gorm.DB, filter domain.Filter) *gorm.DB {
	if filter == nil {
		return query
	}
	if number, ok := filter.OrderNumber(); ok {
		query = query.Where("order_number LIKE ?", number+"%")
	}
	if start, ok := filter.StartDate(); ok {
		query = query.Where("created_at >= ?", start)
	}
	if end, ok := filter.EndDate(); ok {
		query = query.Where("created_at <= ?", end)
	}
	if status, ok := filter.Status(); ok {
		query = query.Where("order_status = ?", string(status))
	}
	// Unknown keys pass through as column equality, identifier-quoted so
	// caller-supplied names cannot break out of the clause.
	for key, value := range filter.Extra() {
		query = query.Where(fmt.Sprintf("%s = ?", pq.QuoteIdentifier(key)), value)
	}
	return query
}

func toRecord(cart *domain.Cart) orderRecord {
	record := orderRecord{
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
	record.Items = make([]itemRecord, 0, len(cart.Items))
	for _, item := range cart.Items {
		rec := itemRecord{
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
			rec.Product = &productRefRecord{
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
		record.Items = append(record.Items, rec)
	}
	return record
}

func (r orderRecord) toDomain() *domain.Cart {
	cart := &domain.Cart{
		ID:             r.ID,
		OrderNumber:    r.OrderNumber,
		Subtotal:       r.Subtotal,
		TaxAmount:      r.TaxAmount,
		DiscountAmount: r.DiscountAmount,
		TotalAmount:    r.TotalAmount,
		PaymentMethod:  r.PaymentMethod,
		CustomerName:   r.CustomerName,
		Notes:          r.Notes,
		CartDate:       r.CartDate,
		IsTakeaway:     r.IsTakeaway,
		IsDraft:        r.IsDraft,
		Status:         domain.Status(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	cart.Items = make([]domain.LineItem, 0, len(r.Items))
	for _, rec := range r.Items {
		item := domain.LineItem{
			ProductID: rec.ProductID,
			Name:      rec.Name,
			Price:     rec.Price,
			Quantity:  rec.Quantity,
			Size:      rec.Size,
			Tax:       rec.Tax,
			Discount:  rec.Discount,
			Total:     rec.Total,
		}
		if rec.Product != nil {
			item.Product = &domain.ProductRef{
				ID:               rec.Product.ID,
				Name:             rec.Product.Name,
				Price:            rec.Product.Price,
				TaxRate:          rec.Product.TaxRate,
				UnitType:         rec.Product.UnitType,
				UnitValue:        rec.Product.UnitValue,
				IsAvailable:      rec.Product.IsAvailable,
				IsPartialAllowed: rec.Product.IsPartialAllowed,
			}
		}
		cart.Items = append(cart.Items, item)
	}
	return cart
}
