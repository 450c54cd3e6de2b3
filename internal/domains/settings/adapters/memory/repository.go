package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openretail/pos-api-server/internal/domains/settings/domain"
	"github.com/openretail/pos-api-server/internal/domains/settings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory settings store.
type Repository struct {
	mu      sync.RWMutex
	theme   *domain.ThemeSettings
	profile *domain.BusinessProfile
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) GetTheme(_ context.Context) (*domain.ThemeSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.theme == nil {
		return nil, ports.ErrNotFound
	}
	clone := *r.theme
	return &clone, nil
}

func (r *Repository) SaveTheme(_ context.Context, theme *domain.ThemeSettings) (*domain.ThemeSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *theme
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.theme = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetProfile(_ context.Context) (*domain.BusinessProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.profile == nil {
		return nil, ports.ErrNotFound
	}
	clone := *r.profile
	return &clone, nil
}

func (r *Repository) SaveProfile(_ context.Context, profile *domain.BusinessProfile) (*domain.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *profile
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.profile = &clone
	out := clone
	return &out, nil
}
