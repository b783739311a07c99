package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEntryNotFound indicates that the ledger entry is not found.
	ErrEntryNotFound = errors.New("ledger entry not found")
	// ErrInvalidRange indicates a query window with start after end.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrLedgerUnavailable indicates that the ledger store cannot accept appends.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
	// ErrUnsupportedKind indicates an unknown entry kind.
	ErrUnsupportedKind = errors.New("unsupported entry kind")
)

// Kind classifies a ledger entry.
type Kind string

// Supported entry kinds.
const (
	// KindCredit is an external top-up; the source account is nil.
	KindCredit Kind = "credit"
	// KindDebit is a plain transfer between two wallets.
	KindDebit Kind = "debit"
	// KindLessonPayment is a class payment carrying the platform commission.
	KindLessonPayment Kind = "lesson-payment"
)

// Valid reports whether the kind is one of the supported entry kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCredit, KindDebit, KindLessonPayment:
		return true
	}

	return false
}

// Entry is a single immutable record of the append-only ledger.
//
// A nil FromAccountID means an external (system) credit. Amount is the gross
// amount paid by the source; on a lesson payment the destination is credited
// Amount minus Commission.
type Entry struct {
	ID            int64           `json:"id"`
	FromAccountID *int32          `json:"from_account_id,omitempty"`
	ToAccountID   int32           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Commission    decimal.Decimal `json:"commission"`
	Kind          Kind            `json:"kind"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateEntryParams is the input data to append a ledger entry.
type CreateEntryParams struct {
	FromAccountID *int32
	ToAccountID   int32
	Amount        decimal.Decimal
	Commission    decimal.Decimal
	Kind          Kind
	Description   string
}

// ListEntriesParams is the input data to page through an account's history.
type ListEntriesParams struct {
	AccountID int32
	Limit     int32
	Offset    int32
}
