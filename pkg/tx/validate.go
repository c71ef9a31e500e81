package tx

import (
	"errors"
	"fmt"

	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/types"
)

// Structural validation errors.
var (
	ErrNoOutputs      = errors.New("transaction has no outputs")
	ErrDuplicateInput = errors.New("duplicate input")
	errOutputOverflow = errors.New("output values overflow")
	ErrZeroOutput     = errors.New("output value is zero")
	ErrInvalidSig     = errors.New("invalid signature")
)

// Validate checks transaction structure that does not require consulting
// the UTXO set: non-empty outputs, no duplicate inputs, no zero-value or
// overflowing outputs. A transaction with zero inputs (coinbase) is
// structurally valid here; its reward/fee amount is checked separately by
// block-level coinbase validation.
func (tx *Transaction) Validate() error {
	if len(tx.Outputs) == 0 {
		return ErrNoOutputs
	}

	seen := make(map[types.Hash]bool, len(tx.Inputs))
	for i, in := range tx.Inputs {
		if seen[in.PrevOutputHash] {
			return fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[in.PrevOutputHash] = true
	}

	if _, err := tx.TotalOutputValue(); err != nil {
		return err
	}
	for i, out := range tx.Outputs {
		if out.Value == 0 {
			return fmt.Errorf("output %d: %w", i, ErrZeroOutput)
		}
	}

	return nil
}

// OutputLookup resolves the output referenced by a TransactionInput, for
// the purpose of verifying its spending signature.
type OutputLookup func(outputHash types.Hash) (TransactionOutput, bool)

// VerifySignatures checks that every non-coinbase input carries a valid
// signature from the public key of the output it spends.
func (tx *Transaction) VerifySignatures(lookup OutputLookup) error {
	if tx.IsCoinbase() {
		return nil
	}
	hash := tx.Hash()
	for i, in := range tx.Inputs {
		out, ok := lookup(in.PrevOutputHash)
		if !ok {
			return fmt.Errorf("input %d: %w: no such output %s", i, ErrInvalidSig, in.PrevOutputHash)
		}
		if !crypto.VerifySignature(hash, in.Signature, out.Pubkey) {
			return fmt.Errorf("input %d: %w", i, ErrInvalidSig)
		}
	}
	return nil
}
