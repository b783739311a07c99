// Package entryrepo manages repository layer of ledger entries.
package entryrepo

import (
	"context"
	"sync"
	"time"

	"github.com/maktab-app/maktab-wallet/internal/domain"
)

// RepoMem is the in-memory append-only ledger. Entries are immutable once
// appended and are never removed.
type RepoMem struct {
	mu          sync.RWMutex
	nextID      int64
	entries     []domain.Entry
	unavailable bool
}

// NewRepoMem returns an empty in-memory ledger.
func NewRepoMem() *RepoMem {
	return &RepoMem{}
}

// Append assigns the next strictly increasing id and the current timestamp to
// the entry and stores it.
func (r *RepoMem) Append(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.unavailable {
		return domain.Entry{}, domain.ErrLedgerUnavailable
	}

	r.nextID++

	e := domain.Entry{
		ID:            r.nextID,
		FromAccountID: copyAccountID(arg.FromAccountID),
		ToAccountID:   arg.ToAccountID,
		Amount:        arg.Amount,
		Commission:    arg.Commission,
		Kind:          arg.Kind,
		Description:   arg.Description,
		CreatedAt:     time.Now().UTC(),
	}

	r.entries = append(r.entries, e)

	return copyEntry(e), nil
}

// Get returns the entry with the given id.
func (r *RepoMem) Get(ctx context.Context, id int64) (domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// ids are dense and start at 1
	if id < 1 || id > int64(len(r.entries)) {
		return domain.Entry{}, domain.ErrEntryNotFound
	}

	return copyEntry(r.entries[id-1]), nil
}

// ListByAccount returns the entries referencing the account, most recent first.
func (r *RepoMem) ListByAccount(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Entry{}

	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.ToAccountID != arg.AccountID &&
			(e.FromAccountID == nil || *e.FromAccountID != arg.AccountID) {
			continue
		}

		matched = append(matched, copyEntry(e))
	}

	start := int(arg.Offset)
	if start > len(matched) {
		start = len(matched)
	}

	end := start + int(arg.Limit)
	if arg.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], nil
}

// ListByDateRange returns the entries created within [start, end], oldest first.
func (r *RepoMem) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Entry, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidRange
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Entry{}

	for _, e := range r.entries {
		if e.CreatedAt.Before(start) || e.CreatedAt.After(end) {
			continue
		}

		matched = append(matched, copyEntry(e))
	}

	return matched, nil
}

// SetUnavailable toggles the ledger availability. While unavailable every
// append fails with ErrLedgerUnavailable and no balance change may be applied
// by callers.
func (r *RepoMem) SetUnavailable(unavailable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unavailable = unavailable
}

func copyEntry(e domain.Entry) domain.Entry {
	e.FromAccountID = copyAccountID(e.FromAccountID)
	return e
}

func copyAccountID(id *int32) *int32 {
	if id == nil {
		return nil
	}

	v := *id

	return &v
}
