package ports

import (
	"context"
	"errors"

	"github.com/openretail/pos-api-server/internal/domains/settings/domain"
)

// ErrNotFound indicates no settings document has been stored yet.
var ErrNotFound = errors.New("settings not found")

// Repository abstracts settings persistence. Both documents are
// singletons per installation.
type Repository interface {
	GetTheme(ctx context.Context) (*domain.ThemeSettings, error)
	SaveTheme(ctx context.Context, theme *domain.ThemeSettings) (*domain.ThemeSettings, error)
	GetProfile(ctx context.Context) (*domain.BusinessProfile, error)
	SaveProfile(ctx context.Context, profile *domain.BusinessProfile) (*domain.BusinessProfile, error)
}
