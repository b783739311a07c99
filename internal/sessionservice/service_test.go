package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/sessionrepo"
	"github.com/maktab-app/maktab-wallet/pkg/configpkg"
	"github.com/maktab-app/maktab-wallet/pkg/randompkg"
	"github.com/maktab-app/maktab-wallet/pkg/tokenpkg"
)

func newTestService(t *testing.T, config configpkg.Config) (*Service, *sessionrepo.RepoMem) {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	repo := sessionrepo.NewRepoMem()

	service, err := New(repo, config, tokenMaker)
	require.NoError(t, err)

	return service, repo
}

func testConfig() configpkg.Config {
	return configpkg.Config{
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}
}

func TestCreate(t *testing.T) {
	service, _ := newTestService(t, testConfig())
	ctx := context.Background()

	username := randompkg.Owner()

	accessToken, expiresAt, sess, err := service.Create(ctx, domain.CreateSessionParams{
		Username: username,
	})
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Second)
	require.Equal(t, username, sess.Username)
	require.NotEmpty(t, sess.RefreshToken)
	require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Second)

	payload, err := service.TokenMaker.VerifyToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, username, payload.Username)
}

func TestRenewAccessToken(t *testing.T) {
	service, repo := newTestService(t, testConfig())
	ctx := context.Background()

	username := randompkg.Owner()

	_, _, sess, err := service.Create(ctx, domain.CreateSessionParams{Username: username})
	require.NoError(t, err)

	accessToken, expiresAt, err := service.RenewAccessToken(ctx, sess.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Second)

	_, _, err = service.RenewAccessToken(ctx, "not-a-token")
	require.ErrorIs(t, err, tokenpkg.ErrInvalidToken)

	// A token no session was stored for.
	otherToken, _, err := service.TokenMaker.CreateToken(username, time.Hour)
	require.NoError(t, err)

	_, _, err = service.RenewAccessToken(ctx, otherToken)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Blocked session: overwrite the stored record with is_blocked set.
	_, _, sess2, err := service.Create(ctx, domain.CreateSessionParams{Username: username})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.CreateSessionParams{
		ID:           sess2.ID,
		Username:     sess2.Username,
		RefreshToken: sess2.RefreshToken,
		IsBlocked:    true,
		ExpiresAt:    sess2.ExpiresAt,
	})
	require.NoError(t, err)

	_, _, err = service.RenewAccessToken(ctx, sess2.RefreshToken)
	require.ErrorIs(t, err, domain.ErrBlockedSession)
}

func TestRenewAccessTokenMismatchedUser(t *testing.T) {
	service, repo := newTestService(t, testConfig())
	ctx := context.Background()

	_, _, sess, err := service.Create(ctx, domain.CreateSessionParams{Username: randompkg.Owner()})
	require.NoError(t, err)

	// Overwrite the stored session with a different username.
	_, err = repo.Create(ctx, domain.CreateSessionParams{
		ID:           sess.ID,
		Username:     randompkg.Owner(),
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt,
	})
	require.NoError(t, err)

	_, _, err = service.RenewAccessToken(ctx, sess.RefreshToken)
	require.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestRenewAccessTokenMismatchedToken(t *testing.T) {
	service, repo := newTestService(t, testConfig())
	ctx := context.Background()

	username := randompkg.Owner()

	_, _, sess, err := service.Create(ctx, domain.CreateSessionParams{Username: username})
	require.NoError(t, err)

	// Store a different refresh token under the same session id.
	_, err = repo.Create(ctx, domain.CreateSessionParams{
		ID:           sess.ID,
		Username:     username,
		RefreshToken: "rotated-elsewhere",
		ExpiresAt:    sess.ExpiresAt,
	})
	require.NoError(t, err)

	_, _, err = service.RenewAccessToken(ctx, sess.RefreshToken)
	require.ErrorIs(t, err, domain.ErrMismatchedRefreshToken)
}
