package cmd

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps [labels...]",
	Short: "Print the construction of the tree one level at a time.",
	RunE:  stepsRun,
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}

func stepsRun(cmd *cobra.Command, args []string) error {
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

	steps := merkle.Steps(tree)

	var sb strings.Builder
	for _, step := range steps {
		sb.WriteString(fmt.Sprintf("step %d/%d\n", step.Step, step.Total))
		for i, level := range step.Levels {
			sb.WriteString(fmt.Sprintf("  L%d:", i))
			for _, d := range level {
				sb.WriteString(" " + d.String())
			}
			sb.WriteString("\n")
		}
	}

	return write(cmd.OutOrStdout(), steps, sb.String())
}
