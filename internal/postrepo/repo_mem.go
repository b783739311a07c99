package postrepo

import (
	"context"
	"sync"
	"time"

	"github.com/maktab-app/maktab-wallet/internal/domain"
)

// RepoMem is the in-memory implementation of the post data access layer.
type RepoMem struct {
	mu     sync.RWMutex
	nextID int32
	posts  map[int32]domain.Post
}

// NewRepoMem returns an empty in-memory post store.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		nextID: 1,
		posts:  make(map[int32]domain.Post),
	}
}

// Create creates the post and returns it.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreatePostParams) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := domain.Post{
		ID:            r.nextID,
		Author:        arg.Author,
		Content:       arg.Content,
		AyahReference: arg.AyahReference,
		AyahText:      arg.AyahText,
		CreatedAt:     time.Now().UTC(),
	}

	r.posts[p.ID] = p
	r.nextID++

	return p, nil
}

// Get returns the post with the given id.
func (r *RepoMem) Get(ctx context.Context, id int32) (domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrPostNotFound
	}

	return p, nil
}

// List returns posts newest first, applying limit and offset.
func (r *RepoMem) List(ctx context.Context, limit, offset int32) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]domain.Post, 0, limit)

	var skipped int32

	for id := r.nextID - 1; id >= 1 && int32(len(posts)) < limit; id-- {
		p, ok := r.posts[id]
		if !ok {
			continue
		}

		if skipped < offset {
			skipped++
			continue
		}

		posts = append(posts, p)
	}

	return posts, nil
}

// Update replaces the post's content fields and returns the updated post.
func (r *RepoMem) Update(ctx context.Context, id int32, arg domain.UpdatePostParams) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrPostNotFound
	}

	p.Content = arg.Content
	p.AyahReference = arg.AyahReference
	p.AyahText = arg.AyahText
	r.posts[id] = p

	return p, nil
}

// Delete removes the post.
func (r *RepoMem) Delete(ctx context.Context, id int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}

	delete(r.posts, id)

	return nil
}

// AddLike increments the post's like counter and returns the updated post.
func (r *RepoMem) AddLike(ctx context.Context, id int32) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrPostNotFound
	}

	p.Likes++
	r.posts[id] = p

	return p, nil
}

// SetFeatured sets the post's featured flag and returns the updated post.
func (r *RepoMem) SetFeatured(ctx context.Context, id int32, featured bool) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrPostNotFound
	}

	p.IsFeatured = featured
	r.posts[id] = p

	return p, nil
}
