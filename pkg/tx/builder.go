package tx

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/types"
)

// Builder constructs transactions incrementally.
type Builder struct {
	tx *Transaction
}

// NewBuilder creates a new transaction builder.
func NewBuilder() *Builder {
	return &Builder{tx: &Transaction{}}
}

// AddInput adds an input referencing a previously created output.
func (b *Builder) AddInput(prevOutputHash types.Hash) *Builder {
	b.tx.Inputs = append(b.tx.Inputs, TransactionInput{PrevOutputHash: prevOutputHash})
	return b
}

// AddOutput adds an output paying value to pub, with a freshly generated
// unique ID.
func (b *Builder) AddOutput(value uint64, pub crypto.PublicKey) *Builder {
	id := uuid.New()
	b.tx.Outputs = append(b.tx.Outputs, TransactionOutput{Value: value, UniqueID: [UniqueIDSize]byte(id), Pubkey: pub})
	return b
}

// Sign signs every input with key. Each input gets the same signature
// (single-key spending, over the transaction's canonical hash).
func (b *Builder) Sign(key *crypto.PrivateKey) error {
	hash := b.tx.Hash()
	sig, err := key.Sign(hash)
	if err != nil {
		return fmt.Errorf("sign tx: %w", err)
	}
	for i := range b.tx.Inputs {
		b.tx.Inputs[i].Signature = sig
	}
	return nil
}

// Build returns the constructed transaction. It does not validate the
// result — call Transaction.Validate separately.
func (b *Builder) Build() *Transaction {
	return b.tx
}
