// Package diagram holds the presentation state layered on top of a merkle
// tree. Highlight and dim flags live in a map keyed by position so the
// structural tree never carries display concerns.
package diagram

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/merkleviz/foundation/merkle"
)

// Decoration describes how a single node should be displayed.
type Decoration struct {
	Highlighted bool `json:"highlighted"`
	Dimmed      bool `json:"dimmed"`
}

// Decorations maps tree positions to their display state. Positions not in
// the map are displayed normally.
type Decorations map[merkle.Position]Decoration

// FromChanges highlights every changed position and dims every other node
// in the tree.
func FromChanges(tree merkle.Tree, changes merkle.ChangeSet) Decorations {
	decs := make(Decorations)

	for level := 0; level < tree.Depth(); level++ {
		for index := range tree.Level(level) {
			decs[merkle.Position{Level: level, Index: index}] = Decoration{Dimmed: true}
		}
	}

	for _, pos := range changes {
		if _, exists := decs[pos]; exists {
			decs[pos] = Decoration{Highlighted: true}
		}
	}

	return decs
}

// PathTo highlights the leaf at the specified index and every ancestor up
// to the root. The nodes needed to prove the leaf are left undecorated and
// everything else is dimmed.
func PathTo(tree merkle.Tree, leaf int) (Decorations, error) {
	proof, err := tree.Proof(leaf)
	if err != nil {
		return nil, err
	}

	decs := make(Decorations)
	for level := 0; level < tree.Depth(); level++ {
		for index := range tree.Level(level) {
			decs[merkle.Position{Level: level, Index: index}] = Decoration{Dimmed: true}
		}
	}

	index := leaf
	for level := 0; level < tree.Depth(); level++ {
		decs[merkle.Position{Level: level, Index: index}] = Decoration{Highlighted: true}

		if level < len(proof.Steps) {
			sibling := index + 1
			if proof.Steps[level].Order == merkle.OrderFirst {
				sibling = index - 1
			}
			if d := decs[merkle.Position{Level: level, Index: sibling}]; d.Dimmed {
				delete(decs, merkle.Position{Level: level, Index: sibling})
			}
		}

		index /= 2
	}

	return decs, nil
}

// Highlighted returns the highlighted positions in level then index order.
func (decs Decorations) Highlighted(tree merkle.Tree) []merkle.Position {
	var positions []merkle.Position
	for level := 0; level < tree.Depth(); level++ {
		for index := range tree.Level(level) {
			pos := merkle.Position{Level: level, Index: index}
			if decs[pos].Highlighted {
				positions = append(positions, pos)
			}
		}
	}
	return positions
}

// =============================================================================

// Render returns an ASCII drawing of the tree, root first. Highlighted
// digests are marked with a star and dimmed digests with a dot.
func Render(tree merkle.Tree, decs Decorations) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Merkle Tree  depth:%d  root:%s\n", tree.Depth(), tree.Root()))

	for level := tree.Depth() - 1; level >= 0; level-- {
		sb.WriteString(fmt.Sprintf("L%-2d", level))

		for index, d := range tree.Level(level) {
			mark := " "
			switch dec := decs[merkle.Position{Level: level, Index: index}]; {
			case dec.Highlighted:
				mark = "*"
			case dec.Dimmed:
				mark = "."
			}
			sb.WriteString(fmt.Sprintf(" %s%s", mark, d))
		}

		sb.WriteString("\n")
	}

	if leaves := tree.Leaves(); len(leaves) > 0 {
		sb.WriteString("   ")
		for _, leaf := range leaves {
			sb.WriteString(fmt.Sprintf(" %-*s", merkle.DigestWidth+1, leaf.Label))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
