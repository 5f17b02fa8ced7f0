package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ardanlabs/merkleviz/business/core/diagram"
	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <index> <label> [labels...]",
	Short: "Replace the label at index and show every digest that changes.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  diffRun,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func diffRun(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("parsing index %q: %w", args[0], err)
	}

	labels, err := readLabels(args[2:])
	if err != nil {
		return err
	}

	if index < 0 || index >= len(labels) {
		return errors.New("index is outside the set of labels")
	}

	before, err := merkle.Build(labels)
	if err != nil {
		return err
	}

	changed := before.Labels()
	changed[index] = args[1]

	after, err := merkle.Build(changed)
	if err != nil {
		return err
	}

	changes := merkle.FindChanges(before, after)

	var sb strings.Builder
	sb.WriteString(diagram.Render(after, diagram.FromChanges(after, changes)))
	sb.WriteString(fmt.Sprintf("changed %d of %d digests:", changes.Len(), countNodes(after)))
	for _, pos := range changes {
		sb.WriteString(" " + pos.String())
	}
	sb.WriteString("\n")

	out := struct {
		Before  treeExport       `json:"before" cbor:"1,keyasint"`
		After   treeExport       `json:"after" cbor:"2,keyasint"`
		Changes merkle.ChangeSet `json:"changes" cbor:"3,keyasint"`
	}{
		Before:  toExport(before),
		After:   toExport(after),
		Changes: changes,
	}

	return write(cmd.OutOrStdout(), out, sb.String())
}

func countNodes(tree merkle.Tree) int {
	var n int
	for _, level := range tree.Levels() {
		n += len(level)
	}
	return n
}
