// Package userrepo manages data access layer of users.
package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/pkg/dbpkg"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
)

// RepoPGS facilitates user data access layer logic backed by PostgreSQL.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS with PostgreSQL implementation.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// Create creates the user and returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	INSERT INTO users (username, hashed_password, full_name, email, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING username, hashed_password, full_name, email, role, password_changed_at, created_at
	`

	var u domain.User

	row := r.db.QueryRowContext(ctx, query,
		arg.Username,
		arg.HashedPassword,
		arg.FullName,
		arg.Email,
		arg.Role,
	)

	err := scanUser(row, &u)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "users_pkey":
				return u, domain.ErrUsernameAlreadyExists
			case "users_email_key":
				return u, domain.ErrEmailAlreadyExists
			}
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

// Get returns the user with the given username.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	SELECT username, hashed_password, full_name, email, role, password_changed_at, created_at
	FROM users
	WHERE username = $1
	`

	var u domain.User

	row := r.db.QueryRowContext(ctx, query, username)

	err := scanUser(row, &u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

func scanUser(row *sql.Row, u *domain.User) error {
	return row.Scan(
		&u.Username,
		&u.HashedPassword,
		&u.FullName,
		&u.Email,
		&u.Role,
		&u.PasswordChangedAt,
		&u.CreatedAt,
	)
}
