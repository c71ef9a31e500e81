// Command transaction-generator writes an unsigned, zero-input transaction
// to a file — a coinbase-shaped seed for testing and chain bootstrapping.
//
// Usage: transaction-generator <output-file>
package main

import (
	"fmt"
	"os"

	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/persist"
	"github.com/ledgerchain/ledger/pkg/tx"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: transaction-generator <output-file>")
		os.Exit(1)
	}
	path := os.Args[1]

	key, err := crypto.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "transaction-generator: generate key: %v\n", err)
		os.Exit(1)
	}

	t := tx.NewBuilder().AddOutput(50, key.PublicKey()).Build()

	if err := persist.SaveTransaction(path, t); err != nil {
		fmt.Fprintf(os.Stderr, "transaction-generator: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote transaction %s to %s\n", t.Hash(), path)
}
