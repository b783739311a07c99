package classrepo

import (
	"context"
	"sync"
	"time"

	"github.com/maktab-app/maktab-wallet/internal/domain"
)

// RepoMem is the in-memory implementation of the class data access layer.
type RepoMem struct {
	mu      sync.RWMutex
	nextID  int32
	classes map[int32]domain.Class
}

// NewRepoMem returns an empty in-memory class store.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		nextID:  1,
		classes: make(map[int32]domain.Class),
	}
}

// Create creates the class and returns it.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateClassParams) (domain.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := domain.Class{
		ID:        r.nextID,
		Title:     arg.Title,
		Teacher:   arg.Teacher,
		Price:     arg.Price,
		CreatedAt: time.Now().UTC(),
	}

	r.classes[c.ID] = c
	r.nextID++

	return c, nil
}

// Get returns the class with the given id.
func (r *RepoMem) Get(ctx context.Context, id int32) (domain.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[id]
	if !ok {
		return domain.Class{}, domain.ErrClassNotFound
	}

	return c, nil
}

// List returns classes ordered by id, applying limit and offset.
func (r *RepoMem) List(ctx context.Context, limit, offset int32) ([]domain.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make([]domain.Class, 0, limit)

	for id := offset + 1; id < r.nextID && int32(len(classes)) < limit; id++ {
		if c, ok := r.classes[id]; ok {
			classes = append(classes, c)
		}
	}

	return classes, nil
}

// AddStudent increments the class student count and returns the updated class.
func (r *RepoMem) AddStudent(ctx context.Context, id int32) (domain.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.classes[id]
	if !ok {
		return domain.Class{}, domain.ErrClassNotFound
	}

	c.Students++
	r.classes[id] = c

	return c, nil
}
