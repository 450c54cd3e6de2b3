package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/openretail/pos-api-server/internal/domains/settings/domain"
	"github.com/openretail/pos-api-server/internal/domains/settings/ports"
)

// ErrInvalidInput marks validation failures callers can surface as 4xx.
var ErrInvalidInput = errors.New("invalid settings input")

// Service implements the settings use cases. A missing theme falls back
// to the defaults instead of erroring, matching what the storefront
// expects on first run.
type Service struct {
	repo     ports.Repository
	currency string
}

// NewService wires a settings service. Empty currency falls back to the default.
func NewService(repo ports.Repository, currency string) *Service {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &Service{repo: repo, currency: currency}
}

func (s *Service) Theme(ctx context.Context) (*domain.ThemeSettings, error) {
	theme, err := s.repo.GetTheme(ctx)
	if errors.Is(err, ports.ErrNotFound) {
		def := domain.DefaultTheme()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return theme, nil
}

func (s *Service) UpdateTheme(ctx context.Context, theme *domain.ThemeSettings) (*domain.ThemeSettings, error) {
	if theme == nil {
		return nil, fmt.Errorf("%w: theme is nil", ErrInvalidInput)
	}
	return s.repo.SaveTheme(ctx, theme)
}

func (s *Service) Profile(ctx context.Context) (*domain.BusinessProfile, error) {
	return s.repo.GetProfile(ctx)
}

func (s *Service) UpdateProfile(ctx context.Context, profile *domain.BusinessProfile) (*domain.BusinessProfile, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is nil", ErrInvalidInput)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.SaveProfile(ctx, profile)
}

func (s *Service) Currency() string {
	return s.currency
}

var _ ports.Service = (*Service)(nil)
