package block

import (
	"errors"
	"fmt"
	"math"

	"github.com/ledgerchain/ledger/pkg/tx"
	"github.com/ledgerchain/ledger/pkg/types"
)

// Validation errors.
var (
	ErrNoTransactions      = errors.New("block has no transactions")
	ErrBadMerkleRoot       = errors.New("merkle root mismatch")
	ErrNoCoinbase          = errors.New("first transaction must be coinbase")
	ErrMultipleCoinbase    = errors.New("multiple coinbase transactions in block")
	ErrBadCoinbaseValue    = errors.New("coinbase output value does not match reward plus fees")
	ErrBadCoinbaseOutputs  = errors.New("coinbase transaction must have at least one output")
	ErrDuplicateBlockInput = errors.New("duplicate input across transactions in block")
	ErrInputNotFound       = errors.New("input references unknown output")
	ErrInputReserved       = errors.New("input references an already-reserved output")
	ErrInsufficientFee     = errors.New("transaction outputs exceed inputs")
	ErrFeeOverflow         = errors.New("fee calculation overflowed")
)

// UTXOSource resolves outputs by the hash a TransactionInput references, and
// reports whether a given output is already reserved by another
// transaction (e.g. one sitting in the mempool).
type UTXOSource interface {
	Output(outputHash types.Hash) (tx.TransactionOutput, bool)
	IsReserved(outputHash types.Hash) bool
}

// Validate checks block structure independent of any UTXO set: a non-empty
// transaction list, exactly one coinbase transaction in the first slot, and
// a merkle root that matches the transaction list.
func (b *Block) Validate() error {
	if len(b.Transactions) == 0 {
		return ErrNoTransactions
	}
	if !b.Transactions[0].IsCoinbase() {
		return ErrNoCoinbase
	}
	for i := 1; i < len(b.Transactions); i++ {
		if b.Transactions[i].IsCoinbase() {
			return fmt.Errorf("tx %d: %w", i, ErrMultipleCoinbase)
		}
	}

	txHashes := make([]types.Hash, len(b.Transactions))
	for i := range b.Transactions {
		txHashes[i] = b.Transactions[i].Hash()
	}
	expected := ComputeMerkleRoot(txHashes)
	if b.Header.MerkleRoot != expected {
		return fmt.Errorf("%w: header=%s computed=%s", ErrBadMerkleRoot, b.Header.MerkleRoot, expected)
	}

	for i := range b.Transactions {
		if err := b.Transactions[i].Validate(); err != nil {
			return fmt.Errorf("tx %d: %w", i, err)
		}
	}

	return nil
}

// CalculateMinerFees sums, over every non-coinbase transaction in the
// block, the value of its referenced inputs minus the value of its
// outputs.
func CalculateMinerFees(b *Block, utxos UTXOSource) (uint64, error) {
	var total uint64
	for i := 1; i < len(b.Transactions); i++ {
		t := &b.Transactions[i]
		var inputSum uint64
		for _, in := range t.Inputs {
			out, ok := utxos.Output(in.PrevOutputHash)
			if !ok {
				return 0, fmt.Errorf("tx %d: %w: %s", i, ErrInputNotFound, in.PrevOutputHash)
			}
			if inputSum > math.MaxUint64-out.Value {
				return 0, fmt.Errorf("tx %d: %w", i, ErrFeeOverflow)
			}
			inputSum += out.Value
		}
		outputSum, err := t.TotalOutputValue()
		if err != nil {
			return 0, fmt.Errorf("tx %d: %w", i, err)
		}
		if outputSum > inputSum {
			return 0, fmt.Errorf("tx %d: %w: inputs=%d outputs=%d", i, ErrInsufficientFee, inputSum, outputSum)
		}
		fee := inputSum - outputSum
		if total > math.MaxUint64-fee {
			return 0, fmt.Errorf("%w", ErrFeeOverflow)
		}
		total += fee
	}
	return total, nil
}

// VerifyCoinbaseTransaction checks that the block's first transaction is a
// well-formed coinbase with one or more outputs summing to exactly
// expectedReward+fees.
func VerifyCoinbaseTransaction(coinbase *tx.Transaction, expectedReward, fees uint64) error {
	if !coinbase.IsCoinbase() {
		return ErrNoCoinbase
	}
	if len(coinbase.Outputs) == 0 {
		return ErrBadCoinbaseOutputs
	}
	got, err := coinbase.TotalOutputValue()
	if err != nil {
		return fmt.Errorf("coinbase: %w", err)
	}
	want := expectedReward + fees
	if got != want {
		return fmt.Errorf("%w: got %d, want %d", ErrBadCoinbaseValue, got, want)
	}
	return nil
}

// VerifyTransactions checks every transaction in the block against the
// given UTXO source: no double-spends within the block, every non-coinbase
// input references an existing and unreserved output, and every signature
// verifies against that output's public key.
func VerifyTransactions(b *Block, utxos UTXOSource) error {
	spent := make(map[types.Hash]int, len(b.Transactions))
	for i := range b.Transactions {
		t := &b.Transactions[i]
		for _, in := range t.Inputs {
			if prev, exists := spent[in.PrevOutputHash]; exists {
				return fmt.Errorf("tx %d: %w: output %s also spent in tx %d", i, ErrDuplicateBlockInput, in.PrevOutputHash, prev)
			}
			spent[in.PrevOutputHash] = i

			if _, ok := utxos.Output(in.PrevOutputHash); !ok {
				return fmt.Errorf("tx %d: %w: %s", i, ErrInputNotFound, in.PrevOutputHash)
			}
			if utxos.IsReserved(in.PrevOutputHash) {
				return fmt.Errorf("tx %d: %w: %s", i, ErrInputReserved, in.PrevOutputHash)
			}
		}
		if err := t.VerifySignatures(utxos.Output); err != nil {
			return fmt.Errorf("tx %d: %w", i, err)
		}
	}
	return nil
}
