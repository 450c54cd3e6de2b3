package ports

import (
	"context"

	"github.com/openretail/pos-api-server/internal/domains/settings/domain"
)

// Service exposes the settings use cases.
type Service interface {
	Theme(ctx context.Context) (*domain.ThemeSettings, error)
	UpdateTheme(ctx context.Context, theme *domain.ThemeSettings) (*domain.ThemeSettings, error)
	Profile(ctx context.Context) (*domain.BusinessProfile, error)
	UpdateProfile(ctx context.Context, profile *domain.BusinessProfile) (*domain.BusinessProfile, error)
	Currency() string
}
