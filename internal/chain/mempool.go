package chain

import (
	"fmt"
	"sort"
	"time"

	"github.com/ledgerchain/ledger/internal/log"
	"github.com/ledgerchain/ledger/pkg/tx"
	"github.com/ledgerchain/ledger/pkg/types"
)

// AddToMempool validates a transaction against the current UTXO set and
// admits it to the mempool. If any of its inputs are already reserved by a
// conflicting mempool transaction, that transaction is evicted first — its
// own reservations released — before the new one is admitted.
func (c *Blockchain) AddToMempool(t tx.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := utxoView{c.UTXOs}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := t.VerifySignatures(view.Output); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	for _, in := range t.Inputs {
		if _, ok := view.Output(in.PrevOutputHash); !ok {
			return fmt.Errorf("input references unknown output %s", in.PrevOutputHash)
		}
	}

	for _, in := range t.Inputs {
		if idx := c.findMempoolConflictLocked(in.PrevOutputHash); idx >= 0 {
			c.evictMempoolEntryLocked(idx)
		}
	}

	for _, in := range t.Inputs {
		c.reserveLocked(in.PrevOutputHash, true)
	}
	c.Mempool = append(c.Mempool, MempoolEntry{EnqueuedAt: time.Now(), Tx: t})
	c.sortMempoolLocked()
	log.Mempool.Debug().Str("hash", t.Hash().String()).Msg("transaction admitted")

	return nil
}

// sortMempoolLocked re-sorts the mempool ascending by miner fee, recomputed
// against the current UTXO set rather than stored on the entry. Must be
// called with c.mu held.
func (c *Blockchain) sortMempoolLocked() {
	view := utxoView{c.UTXOs}
	sort.SliceStable(c.Mempool, func(i, j int) bool {
		return minerFee(c.Mempool[i].Tx, view) < minerFee(c.Mempool[j].Tx, view)
	})
}

// minerFee returns the sum of a transaction's input values minus the sum of
// its output values, against the given UTXO view.
func minerFee(t tx.Transaction, view utxoView) uint64 {
	var inputSum uint64
	for _, in := range t.Inputs {
		out, ok := view.Output(in.PrevOutputHash)
		if !ok {
			continue
		}
		inputSum += out.Value
	}
	var outputSum uint64
	for _, out := range t.Outputs {
		outputSum += out.Value
	}
	if outputSum > inputSum {
		return 0
	}
	return inputSum - outputSum
}

// CleanupMempool removes and returns every mempool entry older than maxAge,
// releasing the UTXO reservations held by their inputs.
func (c *Blockchain) CleanupMempool(maxAge time.Duration) []tx.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	kept := make([]MempoolEntry, 0, len(c.Mempool))
	var evicted []tx.Transaction
	for _, e := range c.Mempool {
		if now.Sub(e.EnqueuedAt) > maxAge {
			for _, in := range e.Tx.Inputs {
				c.reserveLocked(in.PrevOutputHash, false)
			}
			evicted = append(evicted, e.Tx)
			continue
		}
		kept = append(kept, e)
	}
	c.Mempool = kept
	if len(evicted) > 0 {
		log.Mempool.Debug().Int("count", len(evicted)).Msg("evicted stale mempool entries")
	}
	return evicted
}

// findMempoolConflictLocked returns the index of the mempool entry that
// already reserves outputHash, or -1 if none does. Must be called with
// c.mu held.
func (c *Blockchain) findMempoolConflictLocked(outputHash types.Hash) int {
	for i, e := range c.Mempool {
		for _, in := range e.Tx.Inputs {
			if in.PrevOutputHash == outputHash {
				return i
			}
		}
	}
	return -1
}

// evictMempoolEntryLocked removes the mempool entry at idx and releases the
// reservations its inputs held. Must be called with c.mu held.
func (c *Blockchain) evictMempoolEntryLocked(idx int) {
	e := c.Mempool[idx]
	for _, in := range e.Tx.Inputs {
		c.reserveLocked(in.PrevOutputHash, false)
	}
	c.Mempool = append(c.Mempool[:idx], c.Mempool[idx+1:]...)
}

// reserveLocked sets the Reserved flag on a UTXO entry, if it exists. Must
// be called with c.mu held.
func (c *Blockchain) reserveLocked(outputHash types.Hash, reserved bool) {
	e, ok := c.UTXOs[outputHash]
	if !ok {
		return
	}
	e.Reserved = reserved
	c.UTXOs[outputHash] = e
}
