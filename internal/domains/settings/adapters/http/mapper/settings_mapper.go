package mapper

import "github.com/openretail/pos-api-server/internal/domains/settings/domain"

// ThemeSettings is the wire representation of the appearance document.
type ThemeSettings struct {
	ID              string `json:"id,omitempty"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	FontStyle       string `json:"fontStyle"`
}

// Profile is the wire representation of the business profile.
type Profile struct {
	ID           string `json:"id,omitempty"`
	BusinessName string `json:"businessName"`
	OwnerName    string `json:"ownerName,omitempty"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

func ToDomainTheme(t ThemeSettings) *domain.ThemeSettings {
	return &domain.ThemeSettings{
		ID:              t.ID,
		PrimaryColor:    t.PrimaryColor,
		SecondaryColor:  t.SecondaryColor,
		BackgroundColor: t.BackgroundColor,
		FontStyle:       t.FontStyle,
	}
}

func FromDomainTheme(t *domain.ThemeSettings) ThemeSettings {
	if t == nil {
		return ThemeSettings{}
	}
	return ThemeSettings{
		ID:              t.ID,
		PrimaryColor:    t.PrimaryColor,
		SecondaryColor:  t.SecondaryColor,
		BackgroundColor: t.BackgroundColor,
		FontStyle:       t.FontStyle,
	}
}

func ToDomainProfile(p Profile) *domain.BusinessProfile {
	return &domain.BusinessProfile{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		OwnerName:    p.OwnerName,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
	}
}

func FromDomainProfile(p *domain.BusinessProfile) Profile {
	if p == nil {
		return Profile{}
	}
	return Profile{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		OwnerName:    p.OwnerName,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
	}
}
