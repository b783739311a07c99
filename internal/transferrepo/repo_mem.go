// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maktab-app/maktab-wallet/internal/accountrepo"
	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/entryrepo"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
)

// RepoMem executes transfers against the in-memory account store and ledger.
type RepoMem struct {
	accounts *accountrepo.RepoMem
	entries  *entryrepo.RepoMem
}

// NewRepoMem returns transfer RepoMem over the given stores.
func NewRepoMem(accounts *accountrepo.RepoMem, entries *entryrepo.RepoMem) *RepoMem {
	return &RepoMem{
		accounts: accounts,
		entries:  entries,
	}
}

// Transfer moves money between two accounts as one atomic unit.
//
// It takes both accounts' exclusivity in ascending id order, re-validates the
// source balance, appends the ledger entry and only then commits the two
// balance changes. A failed append leaves both balances untouched; a rejected
// transfer leaves no trace at all.
func (r *RepoMem) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	ids := []int32{arg.ToAccountID}
	if arg.FromAccountID != nil {
		ids = append(ids, *arg.FromAccountID)
	}

	release, err := r.accounts.Acquire(ctx, ids...)
	if err != nil {
		return result, err
	}
	defer release()

	to, err := r.accounts.Get(ctx, arg.ToAccountID)
	if err != nil {
		return result, err
	}

	if to.Closed() {
		return result, domain.ErrAccountClosed
	}

	if arg.FromAccountID != nil {
		from, err := r.accounts.Get(ctx, *arg.FromAccountID)
		if err != nil {
			return result, err
		}

		if from.Closed() {
			return result, domain.ErrAccountClosed
		}

		if from.Balance.LessThan(arg.Amount) {
			return result, domain.ErrInsufficientBalance
		}
	}

	// Ledger write precedes balance commit.
	result.Entry, err = r.entries.Append(ctx, domain.CreateEntryParams{
		FromAccountID: arg.FromAccountID,
		ToAccountID:   arg.ToAccountID,
		Amount:        arg.Amount,
		Commission:    arg.Commission,
		Kind:          arg.Kind,
		Description:   arg.Description,
	})
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	// Under both accounts' exclusivity the validated balance changes cannot
	// fail; anything else is an invariant violation.
	if arg.FromAccountID != nil {
		from, err := r.accounts.AddBalance(ctx, arg.Amount.Neg(), *arg.FromAccountID)
		if err != nil {
			l.Error().Err(err).Msg("debit failed after ledger append")
			return domain.TransferTxResult{}, errorspkg.ErrInternal
		}

		result.FromAccount = &from
	}

	net := arg.Amount.Sub(arg.Commission)

	result.ToAccount, err = r.accounts.AddBalance(ctx, net, arg.ToAccountID)
	if err != nil {
		l.Error().Err(err).Msg("credit failed after ledger append")
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}
