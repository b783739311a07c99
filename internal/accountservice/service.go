// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/maktab-app/maktab-wallet/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	Create(ctx context.Context, owner string, balance decimal.Decimal) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
	Close(ctx context.Context, id int32) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates the wallet account for the given owner with balance 0.
// Called once at user registration.
func (s *Service) Create(ctx context.Context, owner string) (domain.Account, error) {
	return s.repo.Create(ctx, owner, decimal.Zero)
}

// Get returns the account with the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByOwner returns the wallet account owned by the given user.
func (s *Service) GetByOwner(ctx context.Context, owner string) (domain.Account, error) {
	return s.repo.GetByOwner(ctx, owner)
}

// Close soft deletes the account with the given id. The account stays
// referenced by its ledger entries.
func (s *Service) Close(ctx context.Context, id int32) (domain.Account, error) {
	return s.repo.Close(ctx, id)
}
