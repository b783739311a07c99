// Package entryservice manages business logic layer of ledger history queries.
package entryservice

import (
	"context"
	"time"

	"github.com/maktab-app/maktab-wallet/internal/domain"
)

// Repo provides data access layer interface needed by entry service layer.
type Repo interface {
	ListByAccount(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Entry, error)
}

// AccountService resolves wallet accounts by their owner.
type AccountService interface {
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
}

// Service facilitates entry service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns entry service struct to manage ledger history business logic.
func New(er Repo, as AccountService) *Service {
	return &Service{
		repo:           er,
		accountService: as,
	}
}

// ListForOwner returns the given user's transaction history, most recent first.
func (s *Service) ListForOwner(ctx context.Context, owner string, pageSize, pageID int32) ([]domain.Entry, error) {
	account, err := s.accountService.GetByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	arg := domain.ListEntriesParams{
		AccountID: account.ID,
		Limit:     pageSize,
		Offset:    (pageID - 1) * pageSize,
	}

	return s.repo.ListByAccount(ctx, arg)
}

// ListByDateRange returns all ledger entries created within [start, end].
func (s *Service) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Entry, error) {
	return s.repo.ListByDateRange(ctx, start, end)
}
