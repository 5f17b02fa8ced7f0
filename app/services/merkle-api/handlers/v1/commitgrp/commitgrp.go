// Package commitgrp maintains the group of handlers for commit and reveal.
package commitgrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ardanlabs/merkleviz/business/core/commit"
	"github.com/ardanlabs/merkleviz/business/sys/metrics"
	"github.com/ardanlabs/merkleviz/business/web/errs"
	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/ardanlabs/merkleviz/foundation/validate"
	"github.com/ardanlabs/merkleviz/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of commitment endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Commit *commit.Core
}

// Create commits to a new set of labels, returning only the root.
func (h Handlers) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nc NewCommitment
	if err := web.Decode(r, &nc); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(nc); err != nil {
		return err
	}

	cmt, err := h.Commit.Commit(ctx, nc.Labels, v.Now)
	if err != nil {
		if merkle.IsInvalidInput(err) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return fmt.Errorf("commit: %w", err)
	}

	metrics.AddCommits(ctx)
	h.Log.Infow("commit", "traceid", v.TraceID, "id", cmt.ID, "root", cmt.Root)

	return web.Respond(ctx, w, toAppCommitment(cmt), http.StatusCreated)
}

// Query returns every commitment.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cmts, err := h.Commit.Query(ctx)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	out := make([]AppCommitment, len(cmts))
	for i, cmt := range cmts {
		out[i] = toAppCommitment(cmt)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// QueryByID returns the specified commitment.
func (h Handlers) QueryByID(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cmt, err := h.Commit.QueryByID(ctx, web.Param(r, "id"))
	if err != nil {
		return toTrusted(err)
	}

	return web.Respond(ctx, w, toAppCommitment(cmt), http.StatusOK)
}

// Reveal checks a single label against the commitment.
func (h Handlers) Reveal(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var rr RevealRequest
	if err := web.Decode(r, &rr); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(rr); err != nil {
		return err
	}

	rvl, err := h.Commit.Reveal(ctx, web.Param(r, "id"), *rr.Index, rr.Label)
	if err != nil {
		return toTrusted(err)
	}

	return web.Respond(ctx, w, rvl, http.StatusOK)
}

// toTrusted maps the errors a client can act on to their status codes.
func toTrusted(err error) error {
	switch {
	case errors.Is(err, commit.ErrInvalidID):
		return errs.NewTrusted(err, http.StatusBadRequest)
	case errors.Is(err, merkle.ErrIndexOutOfRange):
		return errs.NewTrusted(err, http.StatusBadRequest)
	case errors.Is(err, commit.ErrNotFound):
		return errs.NewNotFound(err)
	}
	return err
}
