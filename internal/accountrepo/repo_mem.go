// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maktab-app/maktab-wallet/internal/domain"
)

// DefaultLockWait bounds how long an account's exclusivity is awaited before
// the caller is told to retry.
const DefaultLockWait = time.Second

// RepoMem is the in-memory account store. A single process owns it for the
// lifetime of the application.
//
// Two levels of synchronization: the repo mutex guards the maps and makes
// each single operation atomic, while the per-account semaphore serializes
// multi-step read-modify-write units (transfers) touching the account.
type RepoMem struct {
	lockWait time.Duration

	mu       sync.RWMutex
	nextID   int32
	accounts map[int32]*memAccount
	byOwner  map[string]int32
}

type memAccount struct {
	sem     chan struct{}
	account domain.Account
}

// NewRepoMem returns an empty in-memory account store.
func NewRepoMem(lockWait time.Duration) *RepoMem {
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}

	return &RepoMem{
		lockWait: lockWait,
		accounts: make(map[int32]*memAccount),
		byOwner:  make(map[string]int32),
	}
}

// Create creates an account for the given owner and then returns it.
func (r *RepoMem) Create(ctx context.Context, owner string, balance decimal.Decimal) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byOwner[owner]; ok {
		return domain.Account{}, domain.ErrAccountAlreadyExists
	}

	r.nextID++

	a := domain.Account{
		ID:        r.nextID,
		Owner:     owner,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}

	r.accounts[a.ID] = &memAccount{
		sem:     make(chan struct{}, 1),
		account: a,
	}
	r.byOwner[owner] = a.ID

	return a, nil
}

// Get returns the account with the given id.
func (r *RepoMem) Get(ctx context.Context, id int32) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ma, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return copyAccount(ma.account), nil
}

// GetByOwner returns the wallet account of the given owner.
func (r *RepoMem) GetByOwner(ctx context.Context, owner string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOwner[owner]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return copyAccount(r.accounts[id].account), nil
}

// Close soft deletes the account with the given id. Ledger entries keep
// referencing it, so the record itself is never removed.
func (r *RepoMem) Close(ctx context.Context, id int32) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ma, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if ma.account.Closed() {
		return domain.Account{}, domain.ErrAccountClosed
	}

	now := time.Now().UTC()
	ma.account.ClosedAt = &now

	return copyAccount(ma.account), nil
}

// AddBalance changes the account's balance and returns the changed account.
// The resulting balance is never allowed to go negative.
func (r *RepoMem) AddBalance(ctx context.Context, amount decimal.Decimal, id int32) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ma, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if ma.account.Closed() {
		return domain.Account{}, domain.ErrAccountClosed
	}

	balance := ma.account.Balance.Add(amount)
	if balance.IsNegative() {
		return domain.Account{}, domain.ErrInsufficientBalance
	}

	ma.account.Balance = balance

	return copyAccount(ma.account), nil
}

// Acquire takes the exclusivity of every given account in ascending id order,
// so two transfers in opposite directions cannot deadlock. It returns the
// release function, or ErrBusy when any account's exclusivity cannot be taken
// within the configured wait.
func (r *RepoMem) Acquire(ctx context.Context, ids ...int32) (func(), error) {
	sorted := make([]int32, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	held := make([]chan struct{}, 0, len(sorted))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, id := range sorted {
		r.mu.RLock()
		ma, ok := r.accounts[id]
		r.mu.RUnlock()

		if !ok {
			release()
			return nil, domain.ErrAccountNotFound
		}

		timer := time.NewTimer(r.lockWait)

		select {
		case ma.sem <- struct{}{}:
			timer.Stop()
			held = append(held, ma.sem)
		case <-timer.C:
			release()
			return nil, domain.ErrBusy
		case <-ctx.Done():
			timer.Stop()
			release()

			return nil, ctx.Err()
		}
	}

	return release, nil
}

func copyAccount(a domain.Account) domain.Account {
	if a.ClosedAt != nil {
		closedAt := *a.ClosedAt
		a.ClosedAt = &closedAt
	}

	return a
}
