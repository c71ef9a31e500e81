// Package chain implements the UTXO-based ledger: block acceptance, UTXO
// bookkeeping, difficulty retargeting, and the transaction mempool.
package chain

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ledgerchain/ledger/internal/log"
	"github.com/ledgerchain/ledger/pkg/block"
	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/tx"
	"github.com/ledgerchain/ledger/pkg/types"
)

// Consensus constants.
const (
	InitialReward            = 50          // Coinbase reward paid by block 0, before halving, in whole coins.
	SatoshiPerCoin           = 100_000_000 // Smallest unit: 1 coin = 10^8 satoshis.
	HalvingInterval          = 210         // Blocks between reward halvings.
	IdealBlockTime           = 10          // Target seconds between blocks.
	DifficultyUpdateInterval = 50          // Blocks between target retargets.
)

// Block acceptance errors.
var (
	ErrPrevHashMismatch      = errors.New("block does not extend the current tip")
	ErrInsufficientWork      = errors.New("block header hash does not meet target")
	ErrNonMonotonicTimestamp = errors.New("block timestamp does not exceed tip timestamp")
)

// UTXOEntry is a single entry in the UTXO set: the output itself, and
// whether it is currently reserved by a pending mempool transaction.
type UTXOEntry struct {
	Reserved bool
	Output   tx.TransactionOutput
}

// MempoolEntry pairs a pending transaction with the time it was admitted.
type MempoolEntry struct {
	EnqueuedAt time.Time
	Tx         tx.Transaction
}

// Blockchain is the full node-local ledger state: the confirmed chain, the
// UTXO set derived from it, the current proof-of-work target, and the
// pending transaction mempool.
type Blockchain struct {
	mu sync.RWMutex

	UTXOs   map[types.Hash]UTXOEntry
	Blocks  []block.Block
	Target  types.U256
	Mempool []MempoolEntry
}

// New creates an empty blockchain with the given starting proof-of-work
// target (typically types.MinTarget for a fresh chain).
func New(target types.U256) *Blockchain {
	return &Blockchain{
		UTXOs:  make(map[types.Hash]UTXOEntry),
		Target: target,
	}
}

// utxoView is a lock-free adapter over a UTXO map, satisfying
// block.UTXOSource. Blockchain methods that already hold c.mu build one of
// these to pass into pkg/block's validation functions instead of calling
// back into Blockchain's own locking methods.
type utxoView struct {
	utxos map[types.Hash]UTXOEntry
}

func (v utxoView) Output(h types.Hash) (tx.TransactionOutput, bool) {
	e, ok := v.utxos[h]
	if !ok {
		return tx.TransactionOutput{}, false
	}
	return e.Output, true
}

func (v utxoView) IsReserved(h types.Hash) bool {
	e, ok := v.utxos[h]
	return ok && e.Reserved
}

// Output looks up a UTXO by its output hash.
func (c *Blockchain) Output(h types.Hash) (tx.TransactionOutput, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return utxoView{c.UTXOs}.Output(h)
}

// IsReserved reports whether a UTXO is currently reserved by a mempool entry.
func (c *Blockchain) IsReserved(h types.Hash) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return utxoView{c.UTXOs}.IsReserved(h)
}

// UTXOsForPubkey returns every UTXO entry paying out to pub.
func (c *Blockchain) UTXOsForPubkey(pub crypto.PublicKey) []UTXOEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []UTXOEntry
	for _, e := range c.UTXOs {
		if e.Output.Pubkey == pub {
			out = append(out, e)
		}
	}
	return out
}

// Height returns the number of blocks accepted so far.
func (c *Blockchain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return uint64(len(c.Blocks))
}

// Tip returns the hash of the most recently accepted block, or the zero
// hash if the chain is empty.
func (c *Blockchain) Tip() types.Hash {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.Blocks) == 0 {
		return types.Hash{}
	}
	return c.Blocks[len(c.Blocks)-1].Hash()
}

// BlockReward returns the coinbase subsidy, in satoshis, for the block at
// the given height (0-indexed), halving every HalvingInterval blocks until
// it reaches zero.
func BlockReward(height uint64) uint64 {
	halvings := height / HalvingInterval
	if halvings >= 64 {
		return 0
	}
	return (InitialReward * SatoshiPerCoin) >> halvings
}

// AddBlock validates a candidate block against the current chain tip and
// target, and if valid appends it to Blocks and re-checks the difficulty
// target. It does not touch the UTXO set — callers run RebuildUTXOs
// separately once they're ready to apply the block's effects.
func (c *Blockchain) AddBlock(b block.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 1. Previous-block hash linkage. Genesis must extend the zero hash; it
	// is exempt from the proof-of-work and timestamp checks below, but not
	// from the transaction, coinbase and merkle checks.
	n := len(c.Blocks)
	var expectedPrev types.Hash
	if n > 0 {
		expectedPrev = c.Blocks[n-1].Hash()
	}
	if b.Header.PrevBlockHash != expectedPrev {
		return fmt.Errorf("%w: got %s, want %s", ErrPrevHashMismatch, b.Header.PrevBlockHash, expectedPrev)
	}

	if n > 0 {
		tip := c.Blocks[n-1]

		// 2. Proof-of-work.
		if !types.HashAsU256(b.Hash()).LessOrEqual(c.Target) {
			return fmt.Errorf("%w: target %s", ErrInsufficientWork, c.Target)
		}

		// 2b. Strict timestamp monotonicity.
		if !b.Header.Timestamp.After(tip.Header.Timestamp) {
			return fmt.Errorf("%w: got %s, tip %s", ErrNonMonotonicTimestamp, b.Header.Timestamp, tip.Header.Timestamp)
		}
	}

	// 3. Block-internal transaction structure and UTXO-referential checks.
	if err := b.Validate(); err != nil {
		return fmt.Errorf("structure: %w", err)
	}
	view := utxoView{c.UTXOs}
	if err := block.VerifyTransactions(&b, view); err != nil {
		return fmt.Errorf("transactions: %w", err)
	}

	// 4. Coinbase reward and fee correctness.
	fees, err := block.CalculateMinerFees(&b, view)
	if err != nil {
		return fmt.Errorf("fees: %w", err)
	}
	expectedReward := BlockReward(uint64(len(c.Blocks)))
	if err := block.VerifyCoinbaseTransaction(&b.Transactions[0], expectedReward, fees); err != nil {
		return fmt.Errorf("coinbase: %w", err)
	}

	// 5. Merkle root (also checked in Validate, repeated here for explicitness
	// about the required validation order).
	txHashes := make([]types.Hash, len(b.Transactions))
	for i := range b.Transactions {
		txHashes[i] = b.Transactions[i].Hash()
	}
	if got := block.ComputeMerkleRoot(txHashes); got != b.Header.MerkleRoot {
		return fmt.Errorf("%w: header=%s computed=%s", block.ErrBadMerkleRoot, b.Header.MerkleRoot, got)
	}

	c.Blocks = append(c.Blocks, b)
	log.Chain.Info().Int("height", len(c.Blocks)-1).Str("hash", b.Hash().String()).Msg("block accepted")

	c.tryAdjustTargetLocked()

	return nil
}

// RebuildUTXOs replays every accepted block from scratch, reconstructing the
// UTXO set. For each transaction it removes the outputs its inputs
// reference, then unconditionally indexes its own outputs — including
// coinbase outputs, which have no inputs to remove.
func (c *Blockchain) RebuildUTXOs() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.UTXOs = make(map[types.Hash]UTXOEntry)
	for i := range c.Blocks {
		for j := range c.Blocks[i].Transactions {
			t := &c.Blocks[i].Transactions[j]
			for _, in := range t.Inputs {
				delete(c.UTXOs, in.PrevOutputHash)
			}
			for _, out := range t.Outputs {
				c.UTXOs[out.Hash()] = UTXOEntry{Output: out}
			}
		}
	}
}
