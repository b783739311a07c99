// Package postservice manages business logic layer of community posts.
package postservice

import (
	"context"

	"github.com/maktab-app/maktab-wallet/internal/domain"
)

// Repo provides data access layer interface needed by post service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package postservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreatePostParams) (domain.Post, error)
	Get(ctx context.Context, id int32) (domain.Post, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Post, error)
	Update(ctx context.Context, id int32, arg domain.UpdatePostParams) (domain.Post, error)
	Delete(ctx context.Context, id int32) error
	AddLike(ctx context.Context, id int32) (domain.Post, error)
	SetFeatured(ctx context.Context, id int32, featured bool) (domain.Post, error)
}

// Service facilitates post service layer logic.
type Service struct {
	repo Repo
}

// New returns post service struct to manage post business logic.
func New(pr Repo) *Service {
	return &Service{repo: pr}
}

// Create creates the post.
func (s *Service) Create(ctx context.Context, arg domain.CreatePostParams) (domain.Post, error) {
	return s.repo.Create(ctx, arg)
}

// Get returns the post with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Post, error) {
	return s.repo.Get(ctx, id)
}

// List returns posts newest first, applying page size and page id.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Post, error) {
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, pageSize, offset)
}

// Update replaces the post's content fields. Only the author may update a post.
func (s *Service) Update(ctx context.Context, username string, id int32, arg domain.UpdatePostParams) (domain.Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}

	if p.Author != username {
		return domain.Post{}, domain.ErrNotPostAuthor
	}

	return s.repo.Update(ctx, id, arg)
}

// Delete removes the post. Only the author may delete a post.
func (s *Service) Delete(ctx context.Context, username string, id int32) error {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if p.Author != username {
		return domain.ErrNotPostAuthor
	}

	return s.repo.Delete(ctx, id)
}

// Like increments the post's like counter.
func (s *Service) Like(ctx context.Context, id int32) (domain.Post, error) {
	return s.repo.AddLike(ctx, id)
}

// Feature sets the post's featured flag.
func (s *Service) Feature(ctx context.Context, id int32, featured bool) (domain.Post, error) {
	return s.repo.SetFeatured(ctx, id, featured)
}
