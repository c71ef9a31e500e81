// Package tx defines transaction types and validation.
package tx

import (
	"encoding/binary"
	"math"

	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/types"
)

// UniqueIDSize is the length in bytes of a TransactionOutput's unique ID
// (a random 128-bit value, the same size as a UUID).
const UniqueIDSize = 16

// TransactionOutput creates spendable value for a public key. UniqueID's
// only purpose is to make otherwise-identical outputs (same value, same
// recipient) hash to different identifiers.
type TransactionOutput struct {
	Value    uint64            `json:"value"`
	UniqueID [UniqueIDSize]byte `json:"unique_id"`
	Pubkey   crypto.PublicKey  `json:"pubkey"`
}

// TransactionInput spends a previously created output. The spending public
// key is not carried here — it is looked up from the referenced output.
type TransactionInput struct {
	PrevOutputHash types.Hash        `json:"prev_output_hash"`
	Signature      crypto.Signature  `json:"signature"`
}

// Transaction moves value from referenced outputs to newly created ones.
// A transaction with zero inputs is a coinbase transaction.
type Transaction struct {
	Inputs  []TransactionInput  `json:"inputs"`
	Outputs []TransactionOutput `json:"outputs"`
}

// IsCoinbase reports whether tx creates new coins rather than spending
// existing outputs.
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 0
}

// Hash identifies an output for the purposes of the UTXO set: it is this
// hash, not a transaction ID plus index, that a TransactionInput's
// PrevOutputHash references.
func (out *TransactionOutput) Hash() types.Hash {
	var buf []byte
	buf = binary.LittleEndian.AppendUint64(buf, out.Value)
	buf = append(buf, out.UniqueID[:]...)
	buf = append(buf, out.Pubkey[:]...)
	return crypto.Hash(buf)
}

// Hash computes the transaction ID: the hash of its canonical signing bytes.
func (tx *Transaction) Hash() types.Hash {
	return crypto.Hash(tx.SigningBytes())
}

// SigningBytes returns the canonical byte encoding of tx used both to
// compute its hash and, per input, to compute the message that a spending
// signature is made over. Signatures on inputs are themselves excluded,
// since that would be circular.
func (tx *Transaction) SigningBytes() []byte {
	var buf []byte

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = append(buf, in.PrevOutputHash[:]...)
	}

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = binary.LittleEndian.AppendUint64(buf, out.Value)
		buf = append(buf, out.UniqueID[:]...)
		buf = append(buf, out.Pubkey[:]...)
	}

	return buf
}

// TotalOutputValue returns the sum of all output values, or an error if the
// sum overflows uint64.
func (tx *Transaction) TotalOutputValue() (uint64, error) {
	var total uint64
	for _, out := range tx.Outputs {
		if total > math.MaxUint64-out.Value {
			return 0, errOutputOverflow
		}
		total += out.Value
	}
	return total, nil
}
