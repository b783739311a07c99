package classrepo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/pkg/randompkg"
)

func createClass(t *testing.T, repo *RepoMem) domain.Class {
	t.Helper()

	class, err := repo.Create(context.Background(), domain.CreateClassParams{
		Title:   randompkg.String(10),
		Teacher: randompkg.Owner(),
		Price:   randompkg.MoneyAmountBetween(1, 100),
	})
	require.NoError(t, err)

	return class
}

func TestCreateAndGet(t *testing.T) {
	repo := NewRepoMem()

	created := createClass(t, repo)
	require.NotZero(t, created.ID)
	require.Zero(t, created.Students)

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = repo.Get(context.Background(), created.ID+1)
	require.ErrorIs(t, err, domain.ErrClassNotFound)
}

func TestList(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createClass(t, repo)
	}

	classes, err := repo.List(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, classes, 3)
	require.Equal(t, int32(1), classes[0].ID)

	classes, err = repo.List(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	require.Equal(t, int32(4), classes[0].ID)

	classes, err = repo.List(ctx, 3, 10)
	require.NoError(t, err)
	require.Empty(t, classes)
}

func TestAddStudent(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	created := createClass(t, repo)

	class, err := repo.AddStudent(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, int32(1), class.Students)

	class, err = repo.AddStudent(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, int32(2), class.Students)

	_, err = repo.AddStudent(ctx, created.ID+1)
	require.ErrorIs(t, err, domain.ErrClassNotFound)
}

func TestCreateKeepsPrice(t *testing.T) {
	repo := NewRepoMem()

	price := decimal.RequireFromString("49.99")

	class, err := repo.Create(context.Background(), domain.CreateClassParams{
		Title:   "Geometry",
		Teacher: randompkg.Owner(),
		Price:   price,
	})
	require.NoError(t, err)
	require.True(t, class.Price.Equal(price))
}
