// Package events defines the ledger events published to downstream consumers.
package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopicEntries is the topic carrying committed ledger entries.
const TopicEntries = "ledger.entries"

// EntryRecorded is emitted after a transfer commits.
type EntryRecorded struct {
	EntryID       int64           `json:"entry_id"`
	FromAccountID *int32          `json:"from_account_id,omitempty"`
	ToAccountID   int32           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Commission    decimal.Decimal `json:"commission"`
	Kind          string          `json:"kind"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
