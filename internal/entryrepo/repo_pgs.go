package entryrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/pkg/dbpkg"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
)

// RepoPGS facilitates ledger entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const appendQuery = `
INSERT INTO
    entries (from_account_id, to_account_id, amount, commission, kind, description)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, from_account_id, to_account_id, amount, commission, kind, description, created_at
`

// Append creates the entry and then returns it. Prior entries are never
// mutated or removed.
func (r *RepoPGS) Append(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, appendQuery,
		arg.FromAccountID,
		arg.ToAccountID,
		arg.Amount,
		arg.Commission,
		arg.Kind,
		arg.Description,
	)

	e, err := scanEntry(row.Scan)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "entries_from_account_id_fkey", "entries_to_account_id_fkey":
				return e, domain.ErrAccountNotFound
			case "entries_amount_check", "entries_commission_check":
				return e, domain.ErrInvalidAmount
			}
		}

		return e, domain.ErrLedgerUnavailable
	}

	return e, nil
}

const getQuery = `
SELECT id, from_account_id, to_account_id, amount, commission, kind, description, created_at
FROM entries
WHERE id = $1
`

// Get returns the entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	e, err := scanEntry(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return e, domain.ErrEntryNotFound
		}

		l.Error().Err(err).Send()

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listByAccountQuery = `
SELECT id, from_account_id, to_account_id, amount, commission, kind, description, created_at
FROM entries
WHERE from_account_id = $1 OR to_account_id = $1
ORDER BY id DESC
LIMIT $2 OFFSET $3
`

// ListByAccount returns the entries referencing the account, most recent first.
func (r *RepoPGS) ListByAccount(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	return r.list(ctx, listByAccountQuery, arg.AccountID, arg.Limit, arg.Offset)
}

const listByDateRangeQuery = `
SELECT id, from_account_id, to_account_id, amount, commission, kind, description, created_at
FROM entries
WHERE created_at BETWEEN $1 AND $2
ORDER BY id
`

// ListByDateRange returns the entries created within [start, end], oldest first.
func (r *RepoPGS) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Entry, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidRange
	}

	return r.list(ctx, listByDateRangeQuery, start, end)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanEntry(scan func(...interface{}) error) (domain.Entry, error) {
	var e domain.Entry

	err := scan(
		&e.ID,
		&e.FromAccountID,
		&e.ToAccountID,
		&e.Amount,
		&e.Commission,
		&e.Kind,
		&e.Description,
		&e.CreatedAt,
	)

	return e, err
}
