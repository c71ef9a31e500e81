// Command offline-miner searches for a valid proof-of-work nonce for a
// block loaded from disk, writing the solved block back in place.
//
// Usage: offline-miner <block-file> <steps-per-attempt>
//
// It loops, mining in batches of steps-per-attempt candidates, printing
// progress between batches, until a solution is found.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ledgerchain/ledger/pkg/persist"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: offline-miner <block-file> <steps-per-attempt>")
		os.Exit(1)
	}
	path := os.Args[1]
	steps, err := strconv.ParseUint(os.Args[2], 10, 64)
	if err != nil || steps == 0 {
		fmt.Fprintln(os.Stderr, "offline-miner: steps-per-attempt must be a positive integer")
		os.Exit(1)
	}

	blk, err := persist.LoadBlock(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "offline-miner: %v\n", err)
		os.Exit(1)
	}

	original := blk.Hash()
	fmt.Printf("mining block %s against target %s\n", original, blk.Header.Target)

	attempts := uint64(0)
	for !blk.Header.Mine(steps) {
		attempts++
		fmt.Printf("no solution after %d candidates (batch %d)\n", attempts*steps, attempts)
	}

	fmt.Printf("solved: nonce=%d timestamp=%s hash=%s\n", blk.Header.Nonce, blk.Header.Timestamp, blk.Hash())

	if err := persist.SaveBlock(path, blk); err != nil {
		fmt.Fprintf(os.Stderr, "offline-miner: %v\n", err)
		os.Exit(1)
	}
}
