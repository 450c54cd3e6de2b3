package http

import (
	"github.com/gin-gonic/gin"

	"github.com/openretail/pos-api-server/internal/domains/settings/adapters/http/mapper"
	"github.com/openretail/pos-api-server/internal/domains/settings/ports"
)

// SettingsAPI serves the theme, profile, and currency endpoints.
type SettingsAPI struct {
	service ports.Service
}

// NewSettingsAPI wires the settings endpoints.
func NewSettingsAPI(service ports.Service) *SettingsAPI {
	return &SettingsAPI{service: service}
}

// GetTheme returns the appearance settings, falling back to defaults.
func (a *SettingsAPI) GetTheme(c *gin.Context) {
	theme, err := a.service.Theme(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainTheme(theme), "")
}

// UpdateTheme replaces the appearance settings.
func (a *SettingsAPI) UpdateTheme(c *gin.Context) {
	var payload mapper.ThemeSettings
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, "invalid theme payload: "+err.Error())
		return
	}
	updated, err := a.service.UpdateTheme(c.Request.Context(), mapper.ToDomainTheme(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainTheme(updated), "theme updated")
}

// GetProfile returns the business profile.
func (a *SettingsAPI) GetProfile(c *gin.Context) {
	profile, err := a.service.Profile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainProfile(profile), "")
}

// UpdateProfile replaces the business profile.
func (a *SettingsAPI) UpdateProfile(c *gin.Context) {
	var payload mapper.Profile
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, "invalid profile payload: "+err.Error())
		return
	}
	updated, err := a.service.UpdateProfile(c.Request.Context(), mapper.ToDomainProfile(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainProfile(updated), "profile updated")
}

type currencyResponse struct {
	Currency string `json:"currency"`
}

// GetCurrency returns the configured currency symbol.
func (a *SettingsAPI) GetCurrency(c *gin.Context) {
	respondOK(c, currencyResponse{Currency: a.service.Currency()}, "")
}
