package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openretail/pos-api-server/internal/domains/catalog/domain"
	"github.com/openretail/pos-api-server/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

type productRecord struct {
	ID               string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name             string    `gorm:"column:name"`
	LowerName        string    `gorm:"column:lower_name;index"`
	Description      string    `gorm:"column:description"`
	Image            string    `gorm:"column:image;type:text"`
	Price            float64   `gorm:"column:price"`
	SKU              string    `gorm:"column:sku;type:varchar(64)"`
	Barcode          string    `gorm:"column:barcode;type:varchar(64);index"`
	Category         string    `gorm:"column:category;type:varchar(64);index"`
	StockQuantity    int       `gorm:"column:stock_quantity"`
	UnitType         string    `gorm:"column:unit_type;type:varchar(16)"`
	Unit             string    `gorm:"column:unit;type:varchar(16)"`
	UnitValue        float64   `gorm:"column:unit_value"`
	TaxRate          float64   `gorm:"column:tax_rate"`
	IsAvailable      bool      `gorm:"column:is_available;index"`
	IsPartialAllowed bool      `gorm:"column:is_partial_allowed"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	record := toRecord(product)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return toDomain(record), nil
}

func (r *Repository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	record := toRecord(product)
	tx := r.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", record.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(record)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var record productRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomain(record), nil
}

func (r *Repository) List(ctx context.Context, filter ports.Filter) (*ports.ProductPage, error) {
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if prefix := strings.ToLower(filter.NamePrefix); prefix != "" {
		query = query.Where("lower_name LIKE ?", prefix+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	query = query.Order("lower_name ASC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Product, 0, len(records))
	for _, record := range records {
		items = append(items, toDomain(record))
	}
	return &ports.ProductPage{Items: items, TotalCount: total}, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:               product.ID,
		Name:             product.Name,
		LowerName:        product.LowerName,
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
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}

func toDomain(record productRecord) *domain.Product {
	return &domain.Product{
		ID:               record.ID,
		Name:             record.Name,
		LowerName:        record.LowerName,
		Description:      record.Description,
		Image:            record.Image,
		Price:            record.Price,
		SKU:              record.SKU,
		Barcode:          record.Barcode,
		Category:         record.Category,
		StockQuantity:    record.StockQuantity,
		UnitType:         record.UnitType,
		Unit:             record.Unit,
		UnitValue:        record.UnitValue,
		TaxRate:          record.TaxRate,
		IsAvailable:      record.IsAvailable,
		IsPartialAllowed: record.IsPartialAllowed,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}
