package entryservice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/maktab-app/maktab-wallet/internal/accountrepo"
	"github.com/maktab-app/maktab-wallet/internal/accountservice"
	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/entryrepo"
	"github.com/maktab-app/maktab-wallet/pkg/randompkg"
)

func TestListForOwner(t *testing.T) {
	ctx := context.Background()

	accounts := accountrepo.NewRepoMem(time.Second)
	entries := entryrepo.NewRepoMem()
	service := New(entries, accountservice.New(accounts))

	owner := randompkg.Owner()

	account, err := accounts.Create(ctx, owner, decimal.Zero)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		_, err := entries.Append(ctx, domain.CreateEntryParams{
			ToAccountID: account.ID,
			Amount:      decimal.NewFromInt(int64(i)),
			Kind:        domain.KindCredit,
		})
		require.NoError(t, err)
	}

	got, err := service.ListForOwner(ctx, owner, 3, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.True(t, got[0].Amount.Equal(decimal.NewFromInt(5)))

	got, err = service.ListForOwner(ctx, owner, 3, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	_, err = service.ListForOwner(ctx, randompkg.Owner(), 3, 1)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestListByDateRange(t *testing.T) {
	ctx := context.Background()

	entries := entryrepo.NewRepoMem()
	service := New(entries, accountservice.New(accountrepo.NewRepoMem(time.Second)))

	_, err := entries.Append(ctx, domain.CreateEntryParams{
		ToAccountID: 1,
		Amount:      decimal.NewFromInt(10),
		Kind:        domain.KindCredit,
	})
	require.NoError(t, err)

	now := time.Now().UTC()

	got, err := service.ListByDateRange(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = service.ListByDateRange(ctx, now.Add(time.Hour), now.Add(-time.Hour))
	require.ErrorIs(t, err, domain.ErrInvalidRange)
}
