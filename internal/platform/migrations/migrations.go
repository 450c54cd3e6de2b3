package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&sequenceRecord{},
		&productRecord{},
		&userRecord{},
		&sessionRecord{},
		&themeRecord{},
		&profileRecord{},
	)
}

// Order schema mirrors the sales Postgres adapter. Line items live in a
// JSON column since they are only read back with the whole order.
type orderRecord struct {
	ID             string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	OrderNumber    string    `gorm:"column:order_number;type:varchar(32);index"`
	Items          []byte    `gorm:"column:items;type:jsonb"`
	Subtotal       float64   `gorm:"column:subtotal"`
	TaxAmount      float64   `gorm:"column:tax_amount"`
	DiscountAmount float64   `gorm:"column:discount_amount"`
	TotalAmount    float64   `gorm:"column:total_amount"`
	PaymentMethod  string    `gorm:"column:payment_method;type:varchar(32)"`
	CustomerName   string    `gorm:"column:customer_name"`
	Notes          string    `gorm:"column:notes"`
	CartDate       string    `gorm:"column:cart_date;type:varchar(10)"`
	IsTakeaway     bool      `gorm:"column:is_takeaway"`
	IsDraft        bool      `gorm:"column:is_draft;index"`
	Status         string    `gorm:"column:order_status;type:varchar(32);index"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Sequence schema holds the shared order-number counter.
type sequenceRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Value     string    `gorm:"column:value;type:varchar(32)"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sequenceRecord) TableName() string { return "order_sequences" }

// Product schema mirrors the catalog Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	DisplayName  string    `gorm:"column:display_name"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	Phone        string    `gorm:"column:phone"`
	Role         string    `gorm:"column:role;type:varchar(16)"`
	Active       bool      `gorm:"column:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Username  string     `gorm:"column:username;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Theme schema mirrors the settings Postgres adapter.
type themeRecord struct {
	ID              string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	PrimaryColor    string    `gorm:"column:primary_color;type:varchar(64)"`
	SecondaryColor  string    `gorm:"column:secondary_color;type:varchar(64)"`
	BackgroundColor string    `gorm:"column:background_color;type:varchar(64)"`
	FontStyle       string    `gorm:"column:font_style"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (themeRecord) TableName() string { return "theme_settings" }

// Profile schema mirrors the settings Postgres adapter.
type profileRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	BusinessName string    `gorm:"column:business_name"`
	OwnerName    string    `gorm:"column:owner_name"`
	Email        string    `gorm:"column:email"`
	PhoneNumber  string    `gorm:"column:phone_number"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (profileRecord) TableName() string { return "business_profiles" }
