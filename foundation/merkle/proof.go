package merkle

import (
	"fmt"
	"strings"
)

// Order values describing where the proof digest is placed when combining.
const (
	OrderFirst  = 0 // Proof digest is the left input.
	OrderSecond = 1 // Proof digest is the right input.
)

// ProofStep is one sibling digest on the path from a leaf to the root.
type ProofStep struct {
	Digest Digest `json:"digest"`
	Order  int    `json:"order"`
}

// Proof is the set of digests and the order of combining them required to
// prove a label is committed to by a root.
type Proof struct {
	Index int         `json:"index"`
	Steps []ProofStep `json:"steps"`
}

// String returns a string representation of the proof.
func (p Proof) String() string {
	parts := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		parts[i] = fmt.Sprintf("%s/%d", s.Digest, s.Order)
	}
	return fmt.Sprintf("leaf[%d] %s", p.Index, strings.Join(parts, " "))
}

// Proof returns the sibling digests from the leaf at the specified index up
// to the root. Hash the label in question, then combine it with each step
// in turn: order 0 says the proof digest comes first, order 1 says it comes
// second. The final digest should match the root.
func (t Tree) Proof(index int) (Proof, error) {
	if t.Empty() || index < 0 || index >= len(t.levels[0]) {
		return Proof{}, fmt.Errorf("index %d: %w", index, ErrIndexOutOfRange)
	}

	p := Proof{Index: index}

	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := siblingIndex(index, len(level))

		order := OrderSecond
		if sibling < index {
			order = OrderFirst
		}

		p.Steps = append(p.Steps, ProofStep{Digest: level[sibling], Order: order})
		index /= 2
	}

	return p, nil
}

// VerifyProof recalculates the root from the label and the proof and
// reports whether it matches the specified root.
func VerifyProof(root Digest, label string, p Proof) bool {
	digest := Hash(label)

	for _, step := range p.Steps {
		switch step.Order {
		case OrderFirst:
			digest = Combine(step.Digest, digest)
		case OrderSecond:
			digest = Combine(digest, step.Digest)
		default:
			return false
		}
	}

	return digest == root
}
