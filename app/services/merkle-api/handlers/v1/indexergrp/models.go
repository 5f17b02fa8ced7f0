package indexergrp

import (
	"github.com/ardanlabs/merkleviz/business/core/indexer"
	"github.com/ethereum/go-ethereum/core/types"
)

// LogBatch is a set of logs as returned by eth_getLogs.
type LogBatch struct {
	Logs []types.Log `json:"logs" validate:"required,min=1"`
}

// AppTransfer is the api representation of a transfer. Values are decimal
// strings so they survive clients without big integer support.
type AppTransfer struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
}

func toAppTransfer(tfr indexer.Transfer) AppTransfer {
	return AppTransfer{
		ID:          tfr.ID,
		Token:       tfr.Token.Hex(),
		From:        tfr.From.Hex(),
		To:          tfr.To.Hex(),
		Value:       tfr.Value.String(),
		BlockNumber: tfr.BlockNumber,
		TxHash:      tfr.TxHash.Hex(),
	}
}

// AppBalance is the api representation of a balance.
type AppBalance struct {
	Token       string `json:"token"`
	Account     string `json:"account"`
	Amount      string `json:"amount"`
	BlockNumber uint64 `json:"block_number"`
}

func toAppBalance(bal indexer.Balance) AppBalance {
	return AppBalance{
		Token:       bal.Token.Hex(),
		Account:     bal.Account.Hex(),
		Amount:      bal.Amount.String(),
		BlockNumber: bal.BlockNumber,
	}
}
