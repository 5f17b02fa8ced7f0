// This program builds, compares and proves merkle trees from the command
// line using the same core as the merkle-api service.
package main

import "github.com/ardanlabs/merkleviz/app/tooling/merkle/cmd"

func main() {
	cmd.Execute()
}
