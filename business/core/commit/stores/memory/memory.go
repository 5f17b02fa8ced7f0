// Package memory implements the commit.Storer interface holding every
// commitment in memory.
package memory

import (
	"context"
	"sync"

	"github.com/ardanlabs/merkleviz/business/core/commit"
)

// Memory represents the storage implementation for reading and storing
// commitments in memory using a slice.
type Memory struct {
	mu    sync.RWMutex
	cmts  []commit.Commitment
	index map[string]int
}

// New constructs a Memory value for use.
func New() *Memory {
	return &Memory{
		index: make(map[string]int),
	}
}

// Create stores the commitment.
func (m *Memory) Create(ctx context.Context, cmt commit.Commitment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.index[cmt.ID] = len(m.cmts)
	m.cmts = append(m.cmts, copyCommitment(cmt))

	return nil
}

// QueryByID locates the commitment by its id.
func (m *Memory) QueryByID(ctx context.Context, id string) (commit.Commitment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, exists := m.index[id]
	if !exists {
		return commit.Commitment{}, commit.ErrNotFound
	}

	return copyCommitment(m.cmts[i]), nil
}

// Query returns every commitment in the order they were created.
func (m *Memory) Query(ctx context.Context) ([]commit.Commitment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmts := make([]commit.Commitment, len(m.cmts))
	for i, cmt := range m.cmts {
		cmts[i] = copyCommitment(cmt)
	}

	return cmts, nil
}

func copyCommitment(cmt commit.Commitment) commit.Commitment {
	labels := make([]string, len(cmt.Labels))
	copy(labels, cmt.Labels)
	cmt.Labels = labels
	return cmt
}
