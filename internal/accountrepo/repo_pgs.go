package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/pkg/dbpkg"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (owner, balance)
VALUES
    ($1, $2)
RETURNING id, owner, balance, created_at, closed_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, owner string, balance decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, owner, balance)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_owner_fkey":
				return a, domain.ErrOwnerNotFound
			case "accounts_owner_key":
				return a, domain.ErrAccountAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, owner, balance, created_at, closed_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByOwnerQuery = `
SELECT
	id, owner, balance, created_at, closed_at
FROM accounts
WHERE owner = $1
`

// GetByOwner returns the wallet account of the given owner.
func (r *RepoPGS) GetByOwner(ctx context.Context, owner string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByOwnerQuery, owner)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2 AND closed_at IS NULL
RETURNING id, owner, balance, created_at, closed_at
`

// AddBalance changes the account's balance and returns the changed account.
func (r *RepoPGS) AddBalance(ctx context.Context, amount decimal.Decimal, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const closeQuery = `
UPDATE accounts
SET closed_at = now()
WHERE id = $1 AND closed_at IS NULL
RETURNING id, owner, balance, created_at, closed_at
`

// Close soft deletes the account with the given id.
func (r *RepoPGS) Close(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, closeQuery, id)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			if _, getErr := r.Get(ctx, id); getErr == nil {
				return a, domain.ErrAccountClosed
			}

			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Owner,
		&a.Balance,
		&a.CreatedAt,
		&a.ClosedAt,
	)

	return a, err
}
