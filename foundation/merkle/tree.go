package merkle

import (
	"fmt"
	"strings"
)

// Leaf represents a bottom level node: the label provided by the caller and
// the digest of that label.
type Leaf struct {
	Label  string `json:"label"`
	Digest Digest `json:"digest"`
}

// Position identifies a single node in a tree. Level 0 is the leaf level.
type Position struct {
	Level int `json:"level"`
	Index int `json:"index"`
}

// String implements the Stringer interface.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Level, p.Index)
}

// =============================================================================

// Tree represents a merkle tree as an ordered set of levels, leaves first
// and the root last. The zero value is an empty tree with no root.
type Tree struct {
	labels []string
	levels [][]Digest
}

// Build constructs a tree from the ordered set of labels. When a level has
// an odd number of digests, the last digest is paired with itself.
func Build(labels []string) (Tree, error) {
	if len(labels) == 0 {
		return Tree{}, &InvalidInputError{Reason: "cannot construct tree with no labels"}
	}

	leaves := make([]Digest, len(labels))
	for i, label := range labels {
		leaves[i] = Hash(label)
	}

	levels := [][]Digest{leaves}
	for level := leaves; len(level) > 1; {
		level = buildParents(level)
		levels = append(levels, level)
	}

	lbls := make([]string, len(labels))
	copy(lbls, labels)

	return Tree{labels: lbls, levels: levels}, nil
}

// MustBuild is Build for fixed sets of labels known to be valid. It panics
// on an empty set.
func MustBuild(labels ...string) Tree {
	t, err := Build(labels)
	if err != nil {
		panic(err)
	}
	return t
}

// Depth returns the number of levels in the tree including the leaf and
// root levels.
func (t Tree) Depth() int {
	return len(t.levels)
}

// Empty reports whether the tree was never built.
func (t Tree) Empty() bool {
	return len(t.levels) == 0
}

// Root returns the single digest at the top of the tree.
func (t Tree) Root() Digest {
	if t.Empty() {
		return ""
	}
	return t.levels[len(t.levels)-1][0]
}

// Level returns a copy of the digests at the specified level.
func (t Tree) Level(level int) []Digest {
	if level < 0 || level >= len(t.levels) {
		return nil
	}

	cpy := make([]Digest, len(t.levels[level]))
	copy(cpy, t.levels[level])
	return cpy
}

// Levels returns a copy of every level, leaves first.
func (t Tree) Levels() [][]Digest {
	return copyLevels(t.levels)
}

// Labels returns a copy of the labels the tree was built from.
func (t Tree) Labels() []string {
	cpy := make([]string, len(t.labels))
	copy(cpy, t.labels)
	return cpy
}

// Leaves returns the label and digest for every leaf in input order.
func (t Tree) Leaves() []Leaf {
	if t.Empty() {
		return nil
	}

	leaves := make([]Leaf, len(t.labels))
	for i, label := range t.labels {
		leaves[i] = Leaf{Label: label, Digest: t.levels[0][i]}
	}
	return leaves
}

// Digest returns the digest stored at the specified position.
func (t Tree) Digest(pos Position) (Digest, bool) {
	if pos.Level < 0 || pos.Level >= len(t.levels) {
		return "", false
	}

	level := t.levels[pos.Level]
	if pos.Index < 0 || pos.Index >= len(level) {
		return "", false
	}

	return level[pos.Index], true
}

// Equal reports whether both trees hold the same digests at every position.
func (t Tree) Equal(other Tree) bool {
	if len(t.levels) != len(other.levels) {
		return false
	}

	for i := range t.levels {
		if len(t.levels[i]) != len(other.levels[i]) {
			return false
		}
		for j := range t.levels[i] {
			if t.levels[i][j] != other.levels[i][j] {
				return false
			}
		}
	}

	return true
}

// String returns a string representation of the tree, one level per line
// starting at the root.
func (t Tree) String() string {
	var sb strings.Builder
	for i := len(t.levels) - 1; i >= 0; i-- {
		sb.WriteString(fmt.Sprintf("L%d:", i))
		for _, d := range t.levels[i] {
			sb.WriteString(" ")
			sb.WriteString(string(d))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// =============================================================================

// buildParents constructs the level above the specified level. The last
// digest of an odd length level is used as both children of its parent.
func buildParents(level []Digest) []Digest {
	parents := make([]Digest, 0, (len(level)+1)/2)

	for i := 0; i < len(level); i += 2 {
		left, right := i, i+1
		if right == len(level) {
			right = left
		}
		parents = append(parents, Combine(level[left], level[right]))
	}

	return parents
}

// siblingIndex returns the sibling index for the node at index in a level of
// the specified length. The last node of an odd length level is its own
// sibling.
func siblingIndex(index int, length int) int {
	if index%2 == 0 {
		if index+1 == length {
			return index
		}
		return index + 1
	}
	return index - 1
}

func copyLevels(levels [][]Digest) [][]Digest {
	cpy := make([][]Digest, len(levels))
	for i, level := range levels {
		cpy[i] = make([]Digest, len(level))
		copy(cpy[i], level)
	}
	return cpy
}
