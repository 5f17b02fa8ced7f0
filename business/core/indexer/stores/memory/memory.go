// Package memory implements the indexer store interfaces in memory.
package memory

import (
	"context"
	"math/big"
	"sort"
	"sync"

	"github.com/ardanlabs/merkleviz/business/core/indexer"
	"github.com/ethereum/go-ethereum/common"
)

// Transfers is an append-only set of transfers.
type Transfers struct {
	mu   sync.RWMutex
	tfrs []indexer.Transfer
	ids  map[string]struct{}
}

// NewTransfers constructs an empty transfer store.
func NewTransfers() *Transfers {
	return &Transfers{
		ids: make(map[string]struct{}),
	}
}

// Exists reports whether a transfer with the id is stored.
func (t *Transfers) Exists(ctx context.Context, id string) (bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, exists := t.ids[id]
	return exists, nil
}

// Insert appends the transfer. A transfer with an id already stored is
// rejected with indexer.ErrDuplicate.
func (t *Transfers) Insert(ctx context.Context, tfr indexer.Transfer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.ids[tfr.ID]; exists {
		return indexer.ErrDuplicate
	}

	tfr.Value = new(big.Int).Set(tfr.Value)

	t.ids[tfr.ID] = struct{}{}
	t.tfrs = append(t.tfrs, tfr)

	return nil
}

// Query returns the transfers matching the filter in insert order.
func (t *Transfers) Query(ctx context.Context, filter indexer.Filter) ([]indexer.Transfer, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var tfrs []indexer.Transfer
	for _, tfr := range t.tfrs {
		if filter.Match(tfr) {
			tfr.Value = new(big.Int).Set(tfr.Value)
			tfrs = append(tfrs, tfr)
		}
	}

	return tfrs, nil
}

// =============================================================================

type balanceKey struct {
	token   common.Address
	account common.Address
}

// Balances is a keyed set of balances.
type Balances struct {
	mu   sync.RWMutex
	bals map[balanceKey]indexer.Balance
}

// NewBalances constructs an empty balance store.
func NewBalances() *Balances {
	return &Balances{
		bals: make(map[balanceKey]indexer.Balance),
	}
}

// Get returns the balance for the token and account.
func (b *Balances) Get(ctx context.Context, token common.Address, account common.Address) (indexer.Balance, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bal, exists := b.bals[balanceKey{token, account}]
	if !exists {
		return indexer.Balance{}, indexer.ErrNotFound
	}

	bal.Amount = new(big.Int).Set(bal.Amount)
	return bal, nil
}

// Upsert replaces the balance for the token and account.
func (b *Balances) Upsert(ctx context.Context, bal indexer.Balance) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	bal.Amount = new(big.Int).Set(bal.Amount)
	b.bals[balanceKey{bal.Token, bal.Account}] = bal

	return nil
}

// Query returns every balance held by the account ordered by token.
func (b *Balances) Query(ctx context.Context, account common.Address) ([]indexer.Balance, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var bals []indexer.Balance
	for key, bal := range b.bals {
		if key.account == account {
			bal.Amount = new(big.Int).Set(bal.Amount)
			bals = append(bals, bal)
		}
	}

	sort.Slice(bals, func(i, j int) bool {
		return bals[i].Token.Hex() < bals[j].Token.Hex()
	})

	return bals, nil
}
