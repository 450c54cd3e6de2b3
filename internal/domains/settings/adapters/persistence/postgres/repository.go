package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openretail/pos-api-server/internal/domains/settings/domain"
	"github.com/openretail/pos-api-server/internal/domains/settings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Both tables hold a single row per installation, keyed by a fixed
// singleton id so saves are plain upserts.
const singletonID = "default"

// Repository persists settings in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed settings repository.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&themeRecord{}, &profileRecord{})
	}
	return repo
}

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

func (r *Repository) GetTheme(ctx context.Context) (*domain.ThemeSettings, error) {
	var record themeRecord
	err := r.db.WithContext(ctx).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.ThemeSettings{
		ID:              record.ID,
		PrimaryColor:    record.PrimaryColor,
		SecondaryColor:  record.SecondaryColor,
		BackgroundColor: record.BackgroundColor,
		FontStyle:       record.FontStyle,
	}, nil
}

func (r *Repository) SaveTheme(ctx context.Context, theme *domain.ThemeSettings) (*domain.ThemeSettings, error) {
	record := themeRecord{
		ID:              theme.ID,
		PrimaryColor:    theme.PrimaryColor,
		SecondaryColor:  theme.SecondaryColor,
		BackgroundColor: theme.BackgroundColor,
		FontStyle:       theme.FontStyle,
	}
	if record.ID == "" {
		record.ID = singletonID
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"primary_color", "secondary_color", "background_color", "font_style", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return nil, err
	}
	return r.GetTheme(ctx)
}

func (r *Repository) GetProfile(ctx context.Context) (*domain.BusinessProfile, error) {
	var record profileRecord
	err := r.db.WithContext(ctx).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.BusinessProfile{
		ID:           record.ID,
		BusinessName: record.BusinessName,
		OwnerName:    record.OwnerName,
		Email:        record.Email,
		PhoneNumber:  record.PhoneNumber,
	}, nil
}

func (r *Repository) SaveProfile(ctx context.Context, profile *domain.BusinessProfile) (*domain.BusinessProfile, error) {
	record := profileRecord{
		ID:           profile.ID,
		BusinessName: profile.BusinessName,
		OwnerName:    profile.OwnerName,
		Email:        profile.Email,
		PhoneNumber:  profile.PhoneNumber,
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"business_name", "owner_name", "email", "phone_number", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return nil, err
	}
	return r.GetProfile(ctx)
}
