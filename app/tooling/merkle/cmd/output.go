package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// write encodes the value in the selected format. The text form is produced
// by the caller since each command draws something different.
func write(w io.Writer, v any, text string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case formatCBOR:
		data, err := cbor.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding cbor: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	_, err := io.WriteString(w, text)
	return err
}

// treeExport is the encoded form of a tree for the json and cbor formats.
type treeExport struct {
	Root   string     `json:"root" cbor:"1,keyasint"`
	Depth  int        `json:"depth" cbor:"2,keyasint"`
	Labels []string   `json:"labels" cbor:"3,keyasint"`
	Levels [][]string `json:"levels" cbor:"4,keyasint"`
}
