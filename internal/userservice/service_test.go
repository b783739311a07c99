package userservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maktab-app/maktab-wallet/internal/accountrepo"
	"github.com/maktab-app/maktab-wallet/internal/accountservice"
	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/userrepo"
	"github.com/maktab-app/maktab-wallet/pkg/randompkg"
)

func newTestService(t *testing.T) (*Service, *accountservice.Service) {
	t.Helper()

	accountService := accountservice.New(accountrepo.NewRepoMem(time.Second))

	return New(userrepo.NewRepoMem(), accountService), accountService
}

func TestCreate(t *testing.T) {
	service, accountService := newTestService(t)
	ctx := context.Background()

	username := randompkg.Owner()
	email := randompkg.Email()

	user, err := service.Create(ctx, username, "secret123", "Test User", email, domain.RoleTeacher)
	require.NoError(t, err)
	require.Equal(t, username, user.Username)
	require.Equal(t, domain.RoleTeacher, user.Role)

	// Registration opens the user's wallet with balance 0.
	wallet, err := accountService.GetByOwner(ctx, username)
	require.NoError(t, err)
	require.True(t, wallet.Balance.IsZero())

	_, err = service.Create(ctx, username, "secret123", "Test User", randompkg.Email(), domain.RoleTeacher)
	require.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)

	_, err = service.Create(ctx, randompkg.Owner(), "secret123", "Test User", email, domain.RoleStudent)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreateDefaultRole(t *testing.T) {
	service, _ := newTestService(t)

	user, err := service.Create(context.Background(), randompkg.Owner(), "secret123", "Test User", randompkg.Email(), "")
	require.NoError(t, err)
	require.Equal(t, domain.RoleStudent, user.Role)
}

func TestGet(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	username := randompkg.Owner()

	created, err := service.Create(ctx, username, "secret123", "Test User", randompkg.Email(), domain.RoleStudent)
	require.NoError(t, err)

	got, err := service.Get(ctx, username)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = service.Get(ctx, randompkg.Owner())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCheckPassword(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	username := randompkg.Owner()
	password := randompkg.String(10)

	_, err := service.Create(ctx, username, password, "Test User", randompkg.Email(), domain.RoleStudent)
	require.NoError(t, err)

	user, err := service.CheckPassword(ctx, username, password)
	require.NoError(t, err)
	require.Equal(t, username, user.Username)

	_, err = service.CheckPassword(ctx, username, "wrongpassword")
	require.ErrorIs(t, err, domain.ErrWrongPassword)

	_, err = service.CheckPassword(ctx, randompkg.Owner(), password)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
