package cmd

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/spf13/cobra"
)

var hashCmd = &cobra.Command{
	Use:   "hash [inputs...]",
	Short: "Print the digest of each input.",
	RunE:  hashRun,
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

// hashExport is the encoded form of a single digest.
type hashExport struct {
	Input  string `json:"input" cbor:"1,keyasint"`
	Digest string `json:"digest" cbor:"2,keyasint"`
}

func hashRun(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}

	inputs, err := readLabels(args)
	if err != nil {
		return err
	}

	digests := make([]hashExport, len(inputs))

	var sb strings.Builder
	for i, input := range inputs {
		d := merkle.Hash(input)
		digests[i] = hashExport{Input: input, Digest: d.String()}
		sb.WriteString(fmt.Sprintf("%s  %q\n", d, input))
	}

	return write(cmd.OutOrStdout(), digests, sb.String())
}
