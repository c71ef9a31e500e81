// Command tx-print loads a transaction from disk and prints it in a
// human-readable form.
//
// Usage: tx-print <transaction-file>
package main

import (
	"fmt"
	"os"

	"github.com/ledgerchain/ledger/pkg/persist"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: tx-print <transaction-file>")
		os.Exit(1)
	}

	t, err := persist.LoadTransaction(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tx-print: %v\n", err)
		os.Exit(1)
	}

	kind := "transfer"
	if t.IsCoinbase() {
		kind = "coinbase"
	}
	fmt.Printf("hash:   %s\n", t.Hash())
	fmt.Printf("kind:   %s\n", kind)
	fmt.Printf("inputs: %d\n", len(t.Inputs))
	for i, in := range t.Inputs {
		fmt.Printf("  [%d] prev_output=%s signature=%x\n", i, in.PrevOutputHash, in.Signature)
	}
	fmt.Printf("outputs: %d\n", len(t.Outputs))
	for i, out := range t.Outputs {
		fmt.Printf("  [%d] value=%d unique_id=%x pubkey=%x\n", i, out.Value, out.UniqueID, out.Pubkey)
	}
}
