// Package indexergrp maintains the group of handlers for the transfer
// indexer.
package indexergrp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ardanlabs/merkleviz/business/core/indexer"
	"github.com/ardanlabs/merkleviz/business/sys/metrics"
	"github.com/ardanlabs/merkleviz/business/web/errs"
	"github.com/ardanlabs/merkleviz/foundation/validate"
	"github.com/ardanlabs/merkleviz/foundation/web"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Handlers manages the set of indexer endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	Indexer *indexer.Processor
}

// Process applies a batch of logs to the stores.
func (h Handlers) Process(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var batch LogBatch
	if err := web.Decode(r, &batch); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(batch); err != nil {
		return err
	}

	res, err := h.Indexer.Process(ctx, batch.Logs)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	metrics.AddTransfers(ctx, res.Processed)
	h.Log.Infow("process logs", "traceid", v.TraceID, "processed", res.Processed, "skipped", res.Skipped)

	return web.Respond(ctx, w, res, http.StatusOK)
}

// Transfers returns the transfers, optionally filtered by the token and
// account query parameters.
func (h Handlers) Transfers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var filter indexer.Filter

	if s := r.URL.Query().Get("token"); s != "" {
		token, err := toAddress(s)
		if err != nil {
			return err
		}
		filter.Token = &token
	}

	if s := r.URL.Query().Get("account"); s != "" {
		account, err := toAddress(s)
		if err != nil {
			return err
		}
		filter.Account = &account
	}

	tfrs, err := h.Indexer.Transfers(ctx, filter)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	out := make([]AppTransfer, len(tfrs))
	for i, tfr := range tfrs {
		out[i] = toAppTransfer(tfr)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// Balances returns the balances for the account. When the token query
// parameter is provided only that token's balance is returned.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account, err := toAddress(web.Param(r, "account"))
	if err != nil {
		return err
	}

	if s := r.URL.Query().Get("token"); s != "" {
		token, err := toAddress(s)
		if err != nil {
			return err
		}

		bal, err := h.Indexer.Balance(ctx, token, account)
		if err != nil {
			return fmt.Errorf("balance: %w", err)
		}

		return web.Respond(ctx, w, []AppBalance{toAppBalance(bal)}, http.StatusOK)
	}

	bals, err := h.Indexer.Balances(ctx, account)
	if err != nil {
		return fmt.Errorf("balances: %w", err)
	}

	out := make([]AppBalance, len(bals))
	for i, bal := range bals {
		out[i] = toAppBalance(bal)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

func toAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errs.NewTrusted(fmt.Errorf("invalid address %q", s), http.StatusBadRequest)
	}
	return common.HexToAddress(s), nil
}
