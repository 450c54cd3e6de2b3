package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	usermemory "github.com/openretail/pos-api-server/internal/domains/users/adapters/memory"
	"github.com/openretail/pos-api-server/internal/domains/users/domain"
	"github.com/openretail/pos-api-server/internal/domains/users/ports"
)

func newUserService() *Service {
	return NewService(usermemory.NewRepository(), usermemory.NewSessionStore())
}

func seedUser(t *testing.T, svc *Service, username, password string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, password)
	require.NoError(t, err)
	created, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return created
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc := newUserService()

	created := seedUser(t, svc, "anna", "s3cret99")
	require.NotEmpty(t, created.ID)
	require.NotEqual(t, "s3cret99", created.PasswordHash)
	require.True(t, created.CheckPassword("s3cret99"))
	require.False(t, created.CheckPassword("wrong"))
	require.Equal(t, domain.RoleCashier, created.Role)
	require.True(t, created.Active)
}

func TestCreateUser_WeakPassword(t *testing.T) {
	_, err := domain.NewUser("anna", "short")
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	seedUser(t, svc, "anna", "s3cret99")

	token, err := svc.Login(ctx, "anna", "s3cret99")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Tokens are unguessable per login.
	second, err := svc.Login(ctx, " anna ", "s3cret99")
	require.NoError(t, err)
	require.NotEqual(t, token, second)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	seedUser(t, svc, "anna", "s3cret99")

	_, err := svc.Login(ctx, "anna", "wrongpass")
	require.ErrorIs(t, err, ErrAuthentication)

	_, err = svc.Login(ctx, "ghost", "s3cret99")
	require.ErrorIs(t, err, ErrAuthentication)

	_, err = svc.Login(ctx, "", "")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestLogin_RejectsInactiveUser(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	created := seedUser(t, svc, "anna", "s3cret99")

	created.Active = false
	_, err := svc.Update(ctx, "anna", created)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "anna", "s3cret99")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestUpdate_KeepsStoredHashWhenPasswordOmitted(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	created := seedUser(t, svc, "anna", "s3cret99")

	updated, err := svc.Update(ctx, "anna", &domain.User{
		DisplayName: "Anna B",
		Email:       "anna@example.com",
		Role:        domain.RoleAdmin,
		Active:      true,
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Anna B", updated.DisplayName)
	require.True(t, updated.CheckPassword("s3cret99"))
}

func TestUpdate_InvalidEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	seedUser(t, svc, "anna", "s3cret99")

	_, err := svc.Update(ctx, "anna", &domain.User{Email: "not-an-email", Active: true})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	seedUser(t, svc, "anna", "s3cret99")

	require.NoError(t, svc.Delete(ctx, "anna"))
	_, err := svc.GetByUsername(ctx, "anna")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestService_NilSessionStore(t *testing.T) {
	svc := NewService(usermemory.NewRepository(), nil)
	ctx := context.Background()

	user, err := domain.NewUser("anna", "s3cret99")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, user)
	require.NoError(t, err)

	token, err := svc.Login(ctx, "anna", "s3cret99")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	svc.Logout(ctx, "anna")
}
