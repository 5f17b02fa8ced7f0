package merkle

// PartialTree is the state of a tree construction after a number of steps.
// At step k the first k levels, leaves first, are available.
type PartialTree struct {
	Step   int        `json:"step"`
	Total  int        `json:"total"`
	Levels [][]Digest `json:"levels"`
}

// Complete reports whether this is the final step of the sequence.
func (pt PartialTree) Complete() bool {
	return pt.Step == pt.Total
}

// Steps returns the construction of the tree as a sequence of states. The
// first state holds no levels and the last state holds the full tree, for
// a total of Depth()+1 states. The caller owns the cursor into the
// sequence; calling Steps again on the same tree yields the same sequence.
func Steps(t Tree) []PartialTree {
	total := len(t.levels)

	steps := make([]PartialTree, total+1)
	for k := 0; k <= total; k++ {
		steps[k] = PartialTree{
			Step:   k,
			Total:  total,
			Levels: copyLevels(t.levels[:k]),
		}
	}

	return steps
}
