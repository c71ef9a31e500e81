// Command block-generator writes a fresh genesis-shaped block to a file.
//
// Usage: block-generator <output-file>
//
// The block has a single coinbase transaction paying the initial block
// reward to a freshly generated key, a zero previous-block hash, and the
// loosest possible proof-of-work target. The block is unmined — run it
// through offline-miner before feeding it to a chain that enforces the
// target.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ledgerchain/ledger/internal/chain"
	"github.com/ledgerchain/ledger/pkg/block"
	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/persist"
	"github.com/ledgerchain/ledger/pkg/tx"
	"github.com/ledgerchain/ledger/pkg/types"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: block-generator <output-file>")
		os.Exit(1)
	}
	path := os.Args[1]

	key, err := crypto.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "block-generator: generate key: %v\n", err)
		os.Exit(1)
	}

	coinbase := tx.NewBuilder().AddOutput(chain.BlockReward(0), key.PublicKey()).Build()
	header := block.BlockHeader{
		Timestamp:  time.Now().UTC(),
		Target:     types.MinTarget,
		MerkleRoot: block.ComputeMerkleRoot([]types.Hash{coinbase.Hash()}),
	}
	genesis := block.NewBlock(header, []tx.Transaction{*coinbase})

	if err := persist.SaveBlock(path, genesis); err != nil {
		fmt.Fprintf(os.Stderr, "block-generator: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote genesis block %s to %s\n", genesis.Hash(), path)
}
