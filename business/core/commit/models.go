package commit

import (
	"time"

	"github.com/ardanlabs/merkleviz/foundation/merkle"
)

// Commitment represents a published merkle root over a set of labels. The
// labels are held back by the store and only revealed one at a time.
type Commitment struct {
	ID          string        `json:"id"`
	Root        merkle.Digest `json:"root"`
	Depth       int           `json:"depth"`
	Labels      []string      `json:"labels"`
	DateCreated time.Time     `json:"date_created"`
}

// Reveal is the outcome of checking a single label against a commitment.
type Reveal struct {
	CommitmentID string        `json:"commitment_id"`
	Root         merkle.Digest `json:"root"`
	Index        int           `json:"index"`
	Label        string        `json:"label"`
	Proof        merkle.Proof  `json:"proof"`
	Valid        bool          `json:"valid"`
}
