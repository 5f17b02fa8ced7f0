package treegrp

import (
	"sort"

	"github.com/ardanlabs/merkleviz/business/core/diagram"
	"github.com/ardanlabs/merkleviz/foundation/merkle"
)

type labelsRequest struct {
	Labels []string `json:"labels" validate:"required,min=1,max=65536"`
}

type diffRequest struct {
	Before []string `json:"before" validate:"required,min=1,max=65536"`
	After  []string `json:"after" validate:"required,min=1,max=65536"`
}

type proofRequest struct {
	Labels []string `json:"labels" validate:"required,min=1,max=65536"`
	Index  int      `json:"index" validate:"gte=0"`
}

// =============================================================================

// AppTree is the api representation of a merkle tree.
type AppTree struct {
	Root   merkle.Digest     `json:"root"`
	Depth  int               `json:"depth"`
	Leaves []merkle.Leaf     `json:"leaves"`
	Levels [][]merkle.Digest `json:"levels"`
}

func toAppTree(tree merkle.Tree) AppTree {
	return AppTree{
		Root:   tree.Root(),
		Depth:  tree.Depth(),
		Leaves: tree.Leaves(),
		Levels: tree.Levels(),
	}
}

// AppDecoration is the api representation of the display state of a node.
type AppDecoration struct {
	Level       int  `json:"level"`
	Index       int  `json:"index"`
	Highlighted bool `json:"highlighted"`
	Dimmed      bool `json:"dimmed"`
}

// toAppDecorations flattens the decorations in level then index order.
func toAppDecorations(decs diagram.Decorations) []AppDecoration {
	out := make([]AppDecoration, 0, len(decs))
	for pos, dec := range decs {
		out = append(out, AppDecoration{
			Level:       pos.Level,
			Index:       pos.Index,
			Highlighted: dec.Highlighted,
			Dimmed:      dec.Dimmed,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].Index < out[j].Index
	})

	return out
}

type diffResponse struct {
	Before      AppTree          `json:"before"`
	After       AppTree          `json:"after"`
	Changes     merkle.ChangeSet `json:"changes"`
	Decorations []AppDecoration  `json:"decorations"`
	Render      string           `json:"render"`
}

type proofResponse struct {
	Root        merkle.Digest   `json:"root"`
	Label       string          `json:"label"`
	Proof       merkle.Proof    `json:"proof"`
	Verified    bool            `json:"verified"`
	Decorations []AppDecoration `json:"decorations"`
	Render      string          `json:"render"`
}
