// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountClosed indicates that the account has been closed and can no longer move money.
	ErrAccountClosed = errors.New("account closed")
	// ErrAccountAlreadyExists indicates that the owner already has a wallet account.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrAccountOwnerMismatch indicates that the account belongs to another user.
	ErrAccountOwnerMismatch = errors.New("account does not belong to the authenticated user")
)

// Account holds the current wallet balance of a single user.
//
// Balances are mutated only by the transfer transaction so that every change
// has a matching ledger entry. An account referenced by ledger entries is
// never deleted, only closed.
type Account struct {
	ID        int32           `json:"id"`
	Owner     string          `json:"owner"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	ClosedAt  *time.Time      `json:"closed_at,omitempty"`
}

// Closed reports whether the account has been soft deleted.
func (a Account) Closed() bool {
	return a.ClosedAt != nil
}
