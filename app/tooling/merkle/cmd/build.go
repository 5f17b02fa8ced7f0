package cmd

import (
	"github.com/ardanlabs/merkleviz/business/core/diagram"
	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [labels...]",
	Short: "Build the tree for the labels and print every level.",
	RunE:  buildRun,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func buildRun(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}

	labels, err := readLabels(args)
	if err != nil {
		return err
	}

	tree, err := merkle.Build(labels)
	if err != nil {
		return err
	}

	return write(cmd.OutOrStdout(), toExport(tree), diagram.Render(tree, nil))
}

func toExport(tree merkle.Tree) treeExport {
	levels := tree.Levels()

	exp := treeExport{
		Root:   tree.Root().String(),
		Depth:  tree.Depth(),
		Labels: tree.Labels(),
		Levels: make([][]string, len(levels)),
	}

	for i, level := range levels {
		exp.Levels[i] = make([]string, len(level))
		for j, d := range level {
			exp.Levels[i][j] = d.String()
		}
	}

	return exp
}
