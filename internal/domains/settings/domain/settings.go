package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyBusinessName = errors.New("business name is required")
	ErrInvalidEmail      = errors.New("email must contain '@'")
)

// ThemeSettings holds the storefront appearance values.
type ThemeSettings struct {
	ID              string
	PrimaryColor    string
	SecondaryColor  string
	BackgroundColor string
	FontStyle       string
}

// DefaultTheme returns the out-of-the-box appearance.
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		PrimaryColor:    "#001e3d",
		SecondaryColor:  "#f8f9fa",
		BackgroundColor: "#ffffff",
		FontStyle:       "system-ui",
	}
}

// BusinessProfile holds the operator details shown on receipts and the header.
type BusinessProfile struct {
	ID           string
	BusinessName string
	OwnerName    string
	Email        string
	PhoneNumber  string
}

// Validate checks the profile invariants.
func (p *BusinessProfile) Validate() error {
	if strings.TrimSpace(p.BusinessName) == "" {
		return ErrEmptyBusinessName
	}
	email := strings.TrimSpace(p.Email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// DefaultCurrency is used when no override is configured.
const DefaultCurrency = "$"
