// Package indexer turns ERC-20 Transfer logs into an append-only set of
// transfers and a running balance per token holder. Fetching blocks and
// logs from a chain is left to the caller.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// TransferTopic is the event signature hash of the ERC-20 Transfer event.
var TransferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// Set of error variables for processing logs.
var (
	ErrNotTransfer = errors.New("log is not an erc-20 transfer")
	ErrDuplicate   = errors.New("transfer already exists")
	ErrNotFound    = errors.New("balance not found")
)

// TransferStorer declares the behavior for the append-only transfer store.
type TransferStorer interface {
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, tfr Transfer) error
	Query(ctx context.Context, filter Filter) ([]Transfer, error)
}

// BalanceStorer declares the behavior for the keyed balance store.
type BalanceStorer interface {
	Get(ctx context.Context, token common.Address, account common.Address) (Balance, error)
	Upsert(ctx context.Context, bal Balance) error
	Query(ctx context.Context, account common.Address) ([]Balance, error)
}

// =============================================================================

// Decode extracts the transfer from an ERC-20 Transfer log. The from and to
// addresses are indexed topics and the value is the log data.
func Decode(log types.Log) (Transfer, error) {
	if len(log.Topics) != 3 || log.Topics[0] != TransferTopic || len(log.Data) != 32 {
		return Transfer{}, ErrNotTransfer
	}

	tfr := Transfer{
		ID:          TransferID(log.TxHash, log.Index),
		Token:       log.Address,
		From:        common.BytesToAddress(log.Topics[1].Bytes()),
		To:          common.BytesToAddress(log.Topics[2].Bytes()),
		Value:       new(big.Int).SetBytes(log.Data),
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
		LogIndex:    log.Index,
	}

	return tfr, nil
}

// TransferID forms the unique id of a transfer from its transaction hash
// and position in the block's logs.
func TransferID(txHash common.Hash, logIndex uint) string {
	return fmt.Sprintf("%s-%d", txHash.Hex(), logIndex)
}

// =============================================================================

// Processor applies Transfer logs to the stores.
type Processor struct {
	log       *zap.SugaredLogger
	transfers TransferStorer
	balances  BalanceStorer
}

// NewProcessor constructs a processor for the specified stores.
func NewProcessor(log *zap.SugaredLogger, transfers TransferStorer, balances BalanceStorer) *Processor {
	return &Processor{
		log:       log,
		transfers: transfers,
		balances:  balances,
	}
}

// Process applies the logs in the order provided. Logs that are not
// transfers, were removed by a reorg or were already processed are skipped.
// The from account is debited unless it is the zero address, which is a
// mint, and the to account is credited unless it is the zero address, which
// is a burn. A transfer is recorded only after its balance changes are
// stored, so a log that fails can be processed again.
func (p *Processor) Process(ctx context.Context, logs []types.Log) (Result, error) {
	var res Result

	for _, log := range logs {
		if log.Removed {
			res.Skipped++
			continue
		}

		tfr, err := Decode(log)
		if err != nil {
			res.Skipped++
			continue
		}

		exists, err := p.transfers.Exists(ctx, tfr.ID)
		if err != nil {
			return res, fmt.Errorf("exists transfer[%s]: %w", tfr.ID, err)
		}
		if exists {
			res.Duplicates++
			continue
		}

		if err := p.record(ctx, tfr); err != nil {
			if errors.Is(err, ErrDuplicate) {
				res.Duplicates++
				continue
			}
			return res, err
		}

		res.Processed++
	}

	p.log.Infow("process", "status", "logs processed", "processed", res.Processed, "skipped", res.Skipped, "duplicates", res.Duplicates)

	return res, nil
}

// Transfers returns the transfers matching the filter in insert order.
func (p *Processor) Transfers(ctx context.Context, filter Filter) ([]Transfer, error) {
	return p.transfers.Query(ctx, filter)
}

// Balance returns the balance of the account for the specified token. An
// account that was never seen has a zero balance.
func (p *Processor) Balance(ctx context.Context, token common.Address, account common.Address) (Balance, error) {
	bal, err := p.balances.Get(ctx, token, account)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Balance{Token: token, Account: account, Amount: new(big.Int)}, nil
		}
		return Balance{}, err
	}

	return bal, nil
}

// Balances returns the balance of the account for every token it holds.
func (p *Processor) Balances(ctx context.Context, account common.Address) ([]Balance, error) {
	return p.balances.Query(ctx, account)
}

// =============================================================================

// balanceChange is a pending balance update and the value it replaces.
type balanceChange struct {
	before Balance
	after  Balance
}

// record stores the balance changes for the transfer and then the transfer
// itself. When any write fails the changes already stored are put back.
func (p *Processor) record(ctx context.Context, tfr Transfer) error {
	var changes []balanceChange

	if tfr.From != (common.Address{}) {
		chg, err := p.change(ctx, tfr, tfr.From, new(big.Int).Neg(tfr.Value), changes)
		if err != nil {
			return err
		}
		changes = append(changes, chg)
	}

	if tfr.To != (common.Address{}) {
		chg, err := p.change(ctx, tfr, tfr.To, tfr.Value, changes)
		if err != nil {
			return err
		}
		changes = append(changes, chg)
	}

	for i, chg := range changes {
		if err := p.balances.Upsert(ctx, chg.after); err != nil {
			p.restore(ctx, changes[:i])
			return fmt.Errorf("upsert balance[%s]: %w", chg.after.Account, err)
		}
	}

	if err := p.transfers.Insert(ctx, tfr); err != nil {
		p.restore(ctx, changes)
		if errors.Is(err, ErrDuplicate) {
			return err
		}
		return fmt.Errorf("insert transfer[%s]: %w", tfr.ID, err)
	}

	return nil
}

// change computes the new balance of the account. A balance already changed
// earlier in the same transfer, as happens when an account sends to itself,
// is taken from the pending changes.
func (p *Processor) change(ctx context.Context, tfr Transfer, account common.Address, delta *big.Int, pending []balanceChange) (balanceChange, error) {
	var before Balance

	found := false
	for _, chg := range pending {
		if chg.after.Account == account {
			before, found = chg.after, true
		}
	}

	if !found {
		bal, err := p.Balance(ctx, tfr.Token, account)
		if err != nil {
			return balanceChange{}, fmt.Errorf("get balance[%s]: %w", account, err)
		}
		before = bal
	}

	after := before
	after.Amount = new(big.Int).Add(before.Amount, delta)
	after.BlockNumber = tfr.BlockNumber

	return balanceChange{before: before, after: after}, nil
}

// restore writes back the balances replaced by the changes, newest first.
func (p *Processor) restore(ctx context.Context, changes []balanceChange) {
	for i := len(changes) - 1; i >= 0; i-- {
		if err := p.balances.Upsert(ctx, changes[i].before); err != nil {
			p.log.Errorw("process", "status", "restore balance", "account", changes[i].before.Account, "ERROR", err)
		}
	}
}
