package cmd

import (
	"fmt"
	"strconv"

	"github.com/ardanlabs/merkleviz/business/core/diagram"
	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/spf13/cobra"
)

var proofCmd = &cobra.Command{
	Use:   "proof <index> [labels...]",
	Short: "Print the inclusion proof for the label at index.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  proofRun,
}

func init() {
	rootCmd.AddCommand(proofCmd)
}

func proofRun(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("parsing index %q: %w", args[0], err)
	}

	labels, err := readLabels(args[1:])
	if err != nil {
		return err
	}

	tree, err := merkle.Build(labels)
	if err != nil {
		return err
	}

	proof, err := tree.Proof(index)
	if err != nil {
		return err
	}

	decs, err := diagram.PathTo(tree, index)
	if err != nil {
		return err
	}

	verified := merkle.VerifyProof(tree.Root(), tree.Labels()[index], proof)
	text := fmt.Sprintf("%s%s\nverified: %t\n", diagram.Render(tree, decs), proof, verified)

	out := struct {
		Root     string       `json:"root" cbor:"1,keyasint"`
		Proof    merkle.Proof `json:"proof" cbor:"2,keyasint"`
		Verified bool         `json:"verified" cbor:"3,keyasint"`
	}{
		Root:     tree.Root().String(),
		Proof:    proof,
		Verified: verified,
	}

	return write(cmd.OutOrStdout(), out, text)
}
