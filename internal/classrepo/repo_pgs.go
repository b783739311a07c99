// Package classrepo manages data access layer of classes.
package classrepo

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

// RepoPGS facilitates class data access layer logic backed by PostgreSQL.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns class RepoPGS with PostgreSQL implementation.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// Create creates the class and returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateClassParams) (domain.Class, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	INSERT INTO classes (title, teacher, price)
	VALUES ($1, $2, $3)
	RETURNING id, title, teacher, price, students, created_at
	`

	var c domain.Class

	row := r.db.QueryRowContext(ctx, query, arg.Title, arg.Teacher, arg.Price)

	err := scanClass(row.Scan, &c)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "classes_teacher_fkey" {
			return c, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

// Get returns the class with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Class, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	SELECT id, title, teacher, price, students, created_at
	FROM classes
	WHERE id = $1
	`

	var c domain.Class

	row := r.db.QueryRowContext(ctx, query, id)

	err := scanClass(row.Scan, &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.ErrClassNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

// List returns classes ordered by id, applying limit and offset.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Class, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	SELECT id, title, teacher, price, students, created_at
	FROM classes
	ORDER BY id
	LIMIT $1
	OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	classes := make([]domain.Class, 0, limit)

	for rows.Next() {
		var c domain.Class

		if err := scanClass(rows.Scan, &c); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		classes = append(classes, c)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return classes, nil
}

// AddStudent increments the class student count and returns the updated class.
func (r *RepoPGS) AddStudent(ctx context.Context, id int32) (domain.Class, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	UPDATE classes
	SET students = students + 1
	WHERE id = $1
	RETURNING id, title, teacher, price, students, created_at
	`

	var c domain.Class

	row := r.db.QueryRowContext(ctx, query, id)

	err := scanClass(row.Scan, &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.ErrClassNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

func scanClass(scan func(dest ...any) error, c *domain.Class) error {
	return scan(
		&c.ID,
		&c.Title,
		&c.Teacher,
		&c.Price,
		&c.Students,
		&c.CreatedAt,
	)
}
