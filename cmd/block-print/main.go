// Command block-print loads a block from disk and prints it in a
// human-readable form.
//
// Usage: block-print <block-file>
package main

import (
	"fmt"
	"os"

	"github.com/ledgerchain/ledger/pkg/persist"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: block-print <block-file>")
		os.Exit(1)
	}

	blk, err := persist.LoadBlock(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "block-print: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("hash:            %s\n", blk.Hash())
	fmt.Printf("prev block hash: %s\n", blk.Header.PrevBlockHash)
	fmt.Printf("merkle root:     %s\n", blk.Header.MerkleRoot)
	fmt.Printf("target:          %s\n", blk.Header.Target)
	fmt.Printf("timestamp:       %s\n", blk.Header.Timestamp)
	fmt.Printf("nonce:           %d\n", blk.Header.Nonce)
	fmt.Printf("transactions:    %d\n", len(blk.Transactions))

	for i := range blk.Transactions {
		t := &blk.Transactions[i]
		kind := "transfer"
		if t.IsCoinbase() {
			kind = "coinbase"
		}
		fmt.Printf("  [%d] %s  %s  inputs=%d outputs=%d\n", i, t.Hash(), kind, len(t.Inputs), len(t.Outputs))
		for j, out := range t.Outputs {
			fmt.Printf("        output[%d] value=%d pubkey=%x\n", j, out.Value, out.Pubkey)
		}
	}
}
