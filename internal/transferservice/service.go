// Package transferservice manages business logic layer of transfers. It is
// the only entry point that moves value between accounts.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/events"
	"github.com/maktab-app/maktab-wallet/pkg/moneypkg"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// AccountService provides the account lookups needed for validation.
type AccountService interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
}

// EventPublisher emits committed ledger entries to downstream consumers.
type EventPublisher interface {
	Publish(topic string, event any) error
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
	publisher      EventPublisher
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo, as AccountService, pub EventPublisher) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
		publisher:      pub,
	}
}

func (s *Service) validRequest(ctx context.Context, fromUsername string, arg domain.TransferParams) error {
	l := zerolog.Ctx(ctx)

	if !arg.Kind.Valid() {
		return domain.ErrUnsupportedKind
	}

	// External credits have no source account; every other kind needs one.
	if (arg.Kind == domain.KindCredit) != (arg.FromAccountID == nil) {
		return domain.ErrUnsupportedKind
	}

	if !moneypkg.Valid(arg.Amount) {
		return domain.ErrInvalidAmount
	}

	if arg.FromAccountID != nil {
		if *arg.FromAccountID == arg.ToAccountID {
			return domain.ErrSelfTransfer
		}

		fromAccount, err := s.accountService.Get(ctx, *arg.FromAccountID)
		if err != nil {
			l.Info().Err(err).Send()
			return err
		}

		if fromAccount.Owner != fromUsername {
			return domain.ErrInvalidOwner
		}

		if fromAccount.Closed() {
			return domain.ErrAccountClosed
		}

		if fromAccount.Balance.LessThan(arg.Amount) {
			return domain.ErrInsufficientBalance
		}
	}

	toAccount, err := s.accountService.Get(ctx, arg.ToAccountID)
	if err != nil {
		l.Info().Err(err).Send()
		return err
	}

	if toAccount.Closed() {
		return domain.ErrAccountClosed
	}

	return nil
}

// Transfer checks if the transfer request is valid and then executes it as
// one atomic unit: a rejected transfer leaves both balances exactly as
// before the call. Transfers are not deduplicated.
func (s *Service) Transfer(ctx context.Context, fromUsername string, arg domain.TransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	if err := s.validRequest(ctx, fromUsername, arg); err != nil {
		return domain.TransferTxResult{}, err
	}

	commission := decimal.Zero
	if arg.Kind == domain.KindLessonPayment {
		commission = moneypkg.Commission(arg.Amount)
	}

	result, err := s.repo.Transfer(ctx, domain.CreateTransferParams{
		FromAccountID: arg.FromAccountID,
		ToAccountID:   arg.ToAccountID,
		Amount:        arg.Amount,
		Commission:    commission,
		Kind:          arg.Kind,
		Description:   arg.Description,
	})
	if err != nil {
		return result, err
	}

	// Best effort: a publish failure never rolls back a committed transfer.
	err = s.publisher.Publish(events.TopicEntries, events.EntryRecorded{
		EntryID:       result.Entry.ID,
		FromAccountID: result.Entry.FromAccountID,
		ToAccountID:   result.Entry.ToAccountID,
		Amount:        result.Entry.Amount,
		Commission:    result.Entry.Commission,
		Kind:          string(result.Entry.Kind),
		OccurredAt:    result.Entry.CreatedAt,
	})
	if err != nil {
		l.Warn().Err(err).Int64("entry_id", result.Entry.ID).Msg("failed to publish ledger event")
	}

	return result, nil
}

// TopUp credits the user's own wallet from an external source.
func (s *Service) TopUp(ctx context.Context, username string, amount decimal.Decimal) (domain.TransferTxResult, error) {
	account, err := s.accountService.GetByOwner(ctx, username)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	arg := domain.TransferParams{
		ToAccountID: account.ID,
		Amount:      amount,
		Kind:        domain.KindCredit,
		Description: "Wallet top-up",
	}

	return s.Transfer(ctx, username, arg)
}
