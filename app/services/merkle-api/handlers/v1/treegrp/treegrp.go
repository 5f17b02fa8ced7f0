// Package treegrp maintains the group of handlers for building, comparing
// and replaying merkle trees.
package treegrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ardanlabs/merkleviz/business/core/diagram"
	"github.com/ardanlabs/merkleviz/business/sys/metrics"
	"github.com/ardanlabs/merkleviz/business/web/errs"
	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/ardanlabs/merkleviz/foundation/validate"
	"github.com/ardanlabs/merkleviz/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of tree endpoints.
type Handlers struct {
	Log *zap.SugaredLogger
}

// Build constructs the tree for the provided labels.
func (h Handlers) Build(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req labelsRequest
	if err := decode(r, &req); err != nil {
		return err
	}

	tree, err := build(ctx, req.Labels)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, toAppTree(tree), http.StatusOK)
}

// Diff builds the before and after trees and reports every position where
// the digests differ.
func (h Handlers) Diff(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req diffRequest
	if err := decode(r, &req); err != nil {
		return err
	}

	before, err := build(ctx, req.Before)
	if err != nil {
		return err
	}

	after, err := build(ctx, req.After)
	if err != nil {
		return err
	}

	changes := merkle.FindChanges(before, after)
	decs := diagram.FromChanges(after, changes)

	resp := diffResponse{
		Before:      toAppTree(before),
		After:       toAppTree(after),
		Changes:     changes,
		Decorations: toAppDecorations(decs),
		Render:      diagram.Render(after, decs),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Steps returns the construction of the tree one level at a time.
func (h Handlers) Steps(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req labelsRequest
	if err := decode(r, &req); err != nil {
		return err
	}

	tree, err := build(ctx, req.Labels)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, merkle.Steps(tree), http.StatusOK)
}

// Proof returns the inclusion proof for a single leaf.
func (h Handlers) Proof(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req proofRequest
	if err := decode(r, &req); err != nil {
		return err
	}

	tree, err := build(ctx, req.Labels)
	if err != nil {
		return err
	}

	proof, err := tree.Proof(req.Index)
	if err != nil {
		if errors.Is(err, merkle.ErrIndexOutOfRange) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return fmt.Errorf("proof: %w", err)
	}

	decs, err := diagram.PathTo(tree, req.Index)
	if err != nil {
		return fmt.Errorf("path: %w", err)
	}

	resp := proofResponse{
		Root:        tree.Root(),
		Label:       tree.Labels()[req.Index],
		Proof:       proof,
		Verified:    merkle.VerifyProof(tree.Root(), tree.Labels()[req.Index], proof),
		Decorations: toAppDecorations(decs),
		Render:      diagram.Render(tree, decs),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

func decode(r *http.Request, val any) error {
	if err := web.Decode(r, val); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(val); err != nil {
		return err
	}

	return nil
}

func build(ctx context.Context, labels []string) (merkle.Tree, error) {
	tree, err := merkle.Build(labels)
	if err != nil {
		if merkle.IsInvalidInput(err) {
			return merkle.Tree{}, errs.NewTrusted(err, http.StatusBadRequest)
		}
		return merkle.Tree{}, fmt.Errorf("build: %w", err)
	}

	metrics.AddTrees(ctx)

	return tree, nil
}
