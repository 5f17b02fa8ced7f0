package indexer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Transfer represents a single decoded ERC-20 Transfer event.
type Transfer struct {
	ID          string         `json:"id"`
	Token       common.Address `json:"token"`
	From        common.Address `json:"from"`
	To          common.Address `json:"to"`
	Value       *big.Int       `json:"value"`
	BlockNumber uint64         `json:"block_number"`
	TxHash      common.Hash    `json:"tx_hash"`
	LogIndex    uint           `json:"log_index"`
}

// Balance represents the amount of a token held by an account as of the
// last block that changed it.
type Balance struct {
	Token       common.Address `json:"token"`
	Account     common.Address `json:"account"`
	Amount      *big.Int       `json:"amount"`
	BlockNumber uint64         `json:"block_number"`
}

// Filter narrows the set of transfers returned by a query. Zero values
// match everything.
type Filter struct {
	Token   *common.Address
	Account *common.Address
}

// Match reports whether the transfer passes the filter.
func (f Filter) Match(tfr Transfer) bool {
	if f.Token != nil && *f.Token != tfr.Token {
		return false
	}
	if f.Account != nil && *f.Account != tfr.From && *f.Account != tfr.To {
		return false
	}
	return true
}

// Result summarizes a call to Process.
type Result struct {
	Processed  int `json:"processed"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
}
