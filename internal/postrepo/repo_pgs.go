// Package postrepo manages data access layer of community posts.
package postrepo

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

// RepoPGS facilitates post data access layer logic backed by PostgreSQL.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns post RepoPGS with PostgreSQL implementation.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// Create creates the post and returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreatePostParams) (domain.Post, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	INSERT INTO posts (author, content, ayah_reference, ayah_text)
	VALUES ($1, $2, $3, $4)
	RETURNING id, author, content, ayah_reference, ayah_text, likes, is_featured, created_at
	`

	var p domain.Post

	row := r.db.QueryRowContext(ctx, query, arg.Author, arg.Content, arg.AyahReference, arg.AyahText)

	err := scanPost(row.Scan, &p)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "posts_author_fkey" {
			return p, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

// Get returns the post with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Post, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	SELECT id, author, content, ayah_reference, ayah_text, likes, is_featured, created_at
	FROM posts
	WHERE id = $1
	`

	var p domain.Post

	row := r.db.QueryRowContext(ctx, query, id)

	err := scanPost(row.Scan, &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, domain.ErrPostNotFound
		}

		l.Error().Err(err).Send()

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

// List returns posts newest first, applying limit and offset.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Post, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	SELECT id, author, content, ayah_reference, ayah_text, likes, is_featured, created_at
	FROM posts
	ORDER BY id DESC
	LIMIT $1
	OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	posts := make([]domain.Post, 0, limit)

	for rows.Next() {
		var p domain.Post

		if err := scanPost(rows.Scan, &p); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return posts, nil
}

// Update replaces the post's content fields and returns the updated post.
func (r *RepoPGS) Update(ctx context.Context, id int32, arg domain.UpdatePostParams) (domain.Post, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	UPDATE posts
	SET content = $2, ayah_reference = $3, ayah_text = $4
	WHERE id = $1
	RETURNING id, author, content, ayah_reference, ayah_text, likes, is_featured, created_at
	`

	var p domain.Post

	row := r.db.QueryRowContext(ctx, query, id, arg.Content, arg.AyahReference, arg.AyahText)

	err := scanPost(row.Scan, &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, domain.ErrPostNotFound
		}

		l.Error().Err(err).Send()

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

// Delete removes the post.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	const query = `
	DELETE FROM posts
	WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	affected, err := result.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if affected == 0 {
		return domain.ErrPostNotFound
	}

	return nil
}

// AddLike increments the post's like counter and returns the updated post.
func (r *RepoPGS) AddLike(ctx context.Context, id int32) (domain.Post, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	UPDATE posts
	SET likes = likes + 1
	WHERE id = $1
	RETURNING id, author, content, ayah_reference, ayah_text, likes, is_featured, created_at
	`

	var p domain.Post

	row := r.db.QueryRowContext(ctx, query, id)

	err := scanPost(row.Scan, &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, domain.ErrPostNotFound
		}

		l.Error().Err(err).Send()

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

// SetFeatured sets the post's featured flag and returns the updated post.
func (r *RepoPGS) SetFeatured(ctx context.Context, id int32, featured bool) (domain.Post, error) {
	l := zerolog.Ctx(ctx)

	const query = `
	UPDATE posts
	SET is_featured = $2
	WHERE id = $1
	RETURNING id, author, content, ayah_reference, ayah_text, likes, is_featured, created_at
	`

	var p domain.Post

	row := r.db.QueryRowContext(ctx, query, id, featured)

	err := scanPost(row.Scan, &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, domain.ErrPostNotFound
		}

		l.Error().Err(err).Send()

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

func scanPost(scan func(dest ...any) error, p *domain.Post) error {
	return scan(
		&p.ID,
		&p.Author,
		&p.Content,
		&p.AyahReference,
		&p.AyahText,
		&p.Likes,
		&p.IsFeatured,
		&p.CreatedAt,
	)
}
