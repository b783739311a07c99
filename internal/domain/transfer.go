package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates an amount that is not positive or not
	// representable at 2-decimal currency precision.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance indicates that the source account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSelfTransfer indicates a transfer whose source and destination accounts are the same.
	ErrSelfTransfer = errors.New("source and destination accounts are the same")
	// ErrInvalidOwner indicates that the user is unauthorized to transfer money from the account.
	ErrInvalidOwner = errors.New("unauthorized owner")
	// ErrBusy indicates that the accounts' exclusivity could not be acquired in time.
	ErrBusy = errors.New("accounts busy, retry later")
)

// TransferParams is the input data for the transaction processor.
//
// A nil FromAccountID requests an external credit. The commission is not part
// of the input; the processor derives it from the kind.
type TransferParams struct {
	FromAccountID *int32          `json:"from_account_id,omitempty"`
	ToAccountID   int32           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          Kind            `json:"kind"`
	Description   string          `json:"description"`
}

// CreateTransferParams is the validated input for the transfer transaction,
// with the commission already computed.
type CreateTransferParams struct {
	FromAccountID *int32
	ToAccountID   int32
	Amount        decimal.Decimal
	Commission    decimal.Decimal
	Kind          Kind
	Description   string
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	Entry       Entry    `json:"entry"`
	FromAccount *Account `json:"from_account,omitempty"`
	ToAccount   Account  `json:"to_account"`
}
