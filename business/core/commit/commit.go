// Package commit provides the business logic for committing to a set of
// labels by publishing only the merkle root, then revealing single labels
// later with an inclusion proof.
package commit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound  = errors.New("commitment not found")
	ErrInvalidID = errors.New("ID is not in its proper form")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve commitments.
type Storer interface {
	Create(ctx context.Context, cmt Commitment) error
	QueryByID(ctx context.Context, id string) (Commitment, error)
	Query(ctx context.Context) ([]Commitment, error)
}

// EventHandler defines a function that is called when events occur in the
// processing of commitments.
type EventHandler func(kind string, format string, args ...any)

// Core manages the set of APIs for commitment access.
type Core struct {
	log       *zap.SugaredLogger
	storer    Storer
	evHandler EventHandler
}

// NewCore constructs a core for commitment api access.
func NewCore(log *zap.SugaredLogger, storer Storer, evHandler EventHandler) *Core {
	ev := func(kind string, format string, args ...any) {
		if evHandler != nil {
			evHandler(kind, format, args...)
		}
	}

	return &Core{
		log:       log,
		storer:    storer,
		evHandler: ev,
	}
}

// Commit builds the tree for the labels and stores the commitment.
func (c *Core) Commit(ctx context.Context, labels []string, now time.Time) (Commitment, error) {
	tree, err := merkle.Build(labels)
	if err != nil {
		return Commitment{}, fmt.Errorf("build: %w", err)
	}

	cmt := Commitment{
		ID:          uuid.NewString(),
		Root:        tree.Root(),
		Depth:       tree.Depth(),
		Labels:      tree.Labels(),
		DateCreated: now,
	}

	if err := c.storer.Create(ctx, cmt); err != nil {
		return Commitment{}, fmt.Errorf("create: %w", err)
	}

	c.evHandler("commit", "commitment[%s] root[%s] leaves[%d]", cmt.ID, cmt.Root, len(cmt.Labels))

	return cmt, nil
}

// Reveal checks the label claimed to be at the specified index against the
// committed root. The proof is calculated from the committed tree, so a
// wrong label produces a proof that does not verify.
func (c *Core) Reveal(ctx context.Context, id string, index int, label string) (Reveal, error) {
	cmt, err := c.QueryByID(ctx, id)
	if err != nil {
		return Reveal{}, err
	}

	tree, err := merkle.Build(cmt.Labels)
	if err != nil {
		return Reveal{}, fmt.Errorf("build: %w", err)
	}

	proof, err := tree.Proof(index)
	if err != nil {
		return Reveal{}, fmt.Errorf("proof: %w", err)
	}

	rvl := Reveal{
		CommitmentID: cmt.ID,
		Root:         cmt.Root,
		Index:        index,
		Label:        label,
		Proof:        proof,
		Valid:        merkle.VerifyProof(cmt.Root, label, proof),
	}

	c.evHandler("reveal", "commitment[%s] index[%d] valid[%t]", cmt.ID, index, rvl.Valid)

	return rvl, nil
}

// QueryByID gets the specified commitment from the store.
func (c *Core) QueryByID(ctx context.Context, id string) (Commitment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Commitment{}, ErrInvalidID
	}

	cmt, err := c.storer.QueryByID(ctx, id)
	if err != nil {
		return Commitment{}, fmt.Errorf("query: id[%s]: %w", id, err)
	}

	return cmt, nil
}

// Query retrieves every commitment from the store, oldest first.
func (c *Core) Query(ctx context.Context) ([]Commitment, error) {
	cmts, err := c.storer.Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return cmts, nil
}
