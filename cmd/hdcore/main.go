// Command hdcore is a thin CLI over this module's mnemonic, hdkey, and
// walker packages: generate a mnemonic, derive an extended key along a
// path, or walk a BIP-44 account/address gap-limit scan. It adds no network
// I/O or persisted state of its own — per spec.md §1's Non-goals, it is a
// caller of the core library, not new core behavior.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
