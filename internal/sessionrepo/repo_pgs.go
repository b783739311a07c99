// Package sessionrepo manages data access layer of sessions.
package sessionrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/pkg/dbpkg"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
)

// RepoPGS facilitates session data access layer logic backed by PostgreSQL.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns session RepoPGS with PostgreSQL implementation.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// Create creates the session and returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	INSERT INTO sessions (id, username, refresh_token, user_agent, client_ip, is_blocked, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, username, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at
	`

	var s domain.Session

	row := r.db.QueryRowContext(ctx, query,
		arg.ID,
		arg.Username,
		arg.RefreshToken,
		arg.UserAgent,
		arg.ClientIP,
		arg.IsBlocked,
		arg.ExpiresAt,
	)

	err := scanSession(row, &s)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "sessions_username_fkey" {
			return s, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return s, errorspkg.ErrInternal
	}

	return s, nil
}

// Get returns the session with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	SELECT id, username, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at
	FROM sessions
	WHERE id = $1
	`

	var s domain.Session

	row := r.db.QueryRowContext(ctx, query, id)

	err := scanSession(row, &s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, domain.ErrSessionNotFound
		}

		l.Error().Err(err).Send()

		return s, errorspkg.ErrInternal
	}

	return s, nil
}

func scanSession(row *sql.Row, s *domain.Session) error {
	return row.Scan(
		&s.ID,
		&s.Username,
		&s.RefreshToken,
		&s.UserAgent,
		&s.ClientIP,
		&s.IsBlocked,
		&s.ExpiresAt,
		&s.CreatedAt,
	)
}
