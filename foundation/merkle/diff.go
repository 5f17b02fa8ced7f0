package merkle

// ChangeSet is the ordered set of positions, level then index ascending,
// where two trees hold different digests. It is a value computed on demand
// and never stored inside a Tree.
type ChangeSet []Position

// FindChanges compares two trees position by position. Only positions that
// exist in both trees are compared; anything beyond either tree's bounds is
// not reported. FindChanges(a, b) and FindChanges(b, a) are equal.
func FindChanges(a Tree, b Tree) ChangeSet {
	var changes ChangeSet

	levels := min(len(a.levels), len(b.levels))
	for level := 0; level < levels; level++ {
		la, lb := a.levels[level], b.levels[level]

		width := min(len(la), len(lb))
		for index := 0; index < width; index++ {
			if la[index] != lb[index] {
				changes = append(changes, Position{Level: level, Index: index})
			}
		}
	}

	return changes
}

// Len returns the number of changed positions.
func (cs ChangeSet) Len() int {
	return len(cs)
}

// Contains reports whether the position is part of the change set.
func (cs ChangeSet) Contains(pos Position) bool {
	for _, p := range cs {
		if p == pos {
			return true
		}
	}
	return false
}

// AtLevel returns the changed indexes for the specified level.
func (cs ChangeSet) AtLevel(level int) []int {
	var indexes []int
	for _, p := range cs {
		if p.Level == level {
			indexes = append(indexes, p.Index)
		}
	}
	return indexes
}
