package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	settingsmemory "github.com/openretail/pos-api-server/internal/domains/settings/adapters/memory"
	"github.com/openretail/pos-api-server/internal/domains/settings/domain"
	"github.com/openretail/pos-api-server/internal/domains/settings/ports"
)

func TestTheme_FallsBackToDefault(t *testing.T) {
	svc := NewService(settingsmemory.NewRepository(), "")

	theme, err := svc.Theme(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.DefaultTheme(), *theme)
}

func TestUpdateTheme_RoundTrip(t *testing.T) {
	svc := NewService(settingsmemory.NewRepository(), "")
	ctx := context.Background()

	saved, err := svc.UpdateTheme(ctx, &domain.ThemeSettings{
		PrimaryColor:    "#112233",
		SecondaryColor:  "#445566",
		BackgroundColor: "#ffffff",
		FontStyle:       "serif",
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	theme, err := svc.Theme(ctx)
	require.NoError(t, err)
	require.Equal(t, "#112233", theme.PrimaryColor)

	_, err = svc.UpdateTheme(ctx, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfile(t *testing.T) {
	svc := NewService(settingsmemory.NewRepository(), "")
	ctx := context.Background()

	_, err := svc.Profile(ctx)
	require.ErrorIs(t, err, ports.ErrNotFound)

	saved, err := svc.UpdateProfile(ctx, &domain.BusinessProfile{
		BusinessName: "Corner Cafe",
		OwnerName:    "Anna",
		Email:        "owner@corner.cafe",
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	profile, err := svc.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "Corner Cafe", profile.BusinessName)
}

func TestUpdateProfile_Invalid(t *testing.T) {
	svc := NewService(settingsmemory.NewRepository(), "")
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, &domain.BusinessProfile{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, &domain.BusinessProfile{
		BusinessName: "Corner Cafe",
		Email:        "not-an-email",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCurrency(t *testing.T) {
	require.Equal(t, domain.DefaultCurrency, NewService(settingsmemory.NewRepository(), "").Currency())
	require.Equal(t, "Rs", NewService(settingsmemory.NewRepository(), "Rs").Currency())
}
