package transferrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maktab-app/maktab-wallet/internal/accountrepo"
	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/entryrepo"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
)

// RepoPGS executes transfers within a single database transaction.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns transfer RepoPGS.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: db,
	}
}

// Transfer moves money between two accounts.
//
// It appends the ledger entry and updates both accounts' balances within a
// single database transaction. Balance rows are updated in ascending account
// id order to avoid deadlocks between opposite transfers.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		_ = tx.Rollback()
	}()

	entryRepo := entryrepo.NewRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	result.Entry, err = entryRepo.Append(ctx, domain.CreateEntryParams{
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

	net := arg.Amount.Sub(arg.Commission)

	if arg.FromAccountID == nil {
		result.ToAccount, err = accountRepo.AddBalance(ctx, net, arg.ToAccountID)
		if err != nil {
			return domain.TransferTxResult{}, err
		}
	} else {
		fromID := *arg.FromAccountID

		// Execute balance updates in consistent id order to avoid deadlocks.
		steps := []struct {
			id     int32
			amount decimal.Decimal
			from   bool
		}{
			{fromID, arg.Amount.Neg(), true},
			{arg.ToAccountID, net, false},
		}
		if arg.ToAccountID < fromID {
			steps[0], steps[1] = steps[1], steps[0]
		}

		for _, step := range steps {
			account, err := accountRepo.AddBalance(ctx, step.amount, step.id)
			if err != nil {
				return domain.TransferTxResult{}, err
			}

			if step.from {
				from := account
				result.FromAccount = &from
			} else {
				result.ToAccount = account
			}
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}
