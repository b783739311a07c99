package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/maktab-app/maktab-wallet/internal/domain"
)

// RepoMem is the in-memory implementation of the user data access layer.
type RepoMem struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	byEmail map[string]string
}

// NewRepoMem returns an empty in-memory user store.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

// Create creates the user and returns it.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[arg.Username]; ok {
		return domain.User{}, domain.ErrUsernameAlreadyExists
	}

	if _, ok := r.byEmail[arg.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists
	}

	now := time.Now().UTC()

	u := domain.User{
		Username:          arg.Username,
		HashedPassword:    arg.HashedPassword,
		FullName:          arg.FullName,
		Email:             arg.Email,
		Role:              arg.Role,
		PasswordChangedAt: now,
		CreatedAt:         now,
	}

	r.users[u.Username] = u
	r.byEmail[u.Email] = u.Username

	return u, nil
}

// Get returns the user with the given username.
func (r *RepoMem) Get(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return u, nil
}
