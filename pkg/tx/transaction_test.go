package tx

import (
	"testing"

	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/types"
)

func mustKey(t *testing.T) *crypto.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return key
}

func TestIsCoinbase(t *testing.T) {
	coinbase := &Transaction{Outputs: []TransactionOutput{{Value: 50}}}
	if !coinbase.IsCoinbase() {
		t.Error("zero-input transaction should be coinbase")
	}

	spending := &Transaction{
		Inputs:  []TransactionInput{{}},
		Outputs: []TransactionOutput{{Value: 1}},
	}
	if spending.IsCoinbase() {
		t.Error("transaction with inputs should not be coinbase")
	}
}

func TestTransactionHashDeterministic(t *testing.T) {
	key := mustKey(t)
	out := TransactionOutput{Value: 100, Pubkey: key.PublicKey()}
	tx1 := &Transaction{Outputs: []TransactionOutput{out}}
	tx2 := &Transaction{Outputs: []TransactionOutput{out}}

	if tx1.Hash() != tx2.Hash() {
		t.Error("identical transactions should hash the same")
	}
}

func TestOutputHashUniqueness(t *testing.T) {
	key := mustKey(t)
	a := TransactionOutput{Value: 100, Pubkey: key.PublicKey(), UniqueID: [16]byte{1}}
	b := TransactionOutput{Value: 100, Pubkey: key.PublicKey(), UniqueID: [16]byte{2}}

	if a.Hash() == b.Hash() {
		t.Error("outputs differing only by UniqueID should hash differently")
	}
}

func TestTotalOutputValueOverflow(t *testing.T) {
	tx := &Transaction{Outputs: []TransactionOutput{
		{Value: ^uint64(0)},
		{Value: 1},
	}}
	if _, err := tx.TotalOutputValue(); err == nil {
		t.Error("expected overflow error")
	}
}

func TestTotalOutputValueSum(t *testing.T) {
	tx := &Transaction{Outputs: []TransactionOutput{
		{Value: 10},
		{Value: 20},
		{Value: 30},
	}}
	total, err := tx.TotalOutputValue()
	if err != nil {
		t.Fatalf("TotalOutputValue: %v", err)
	}
	if total != 60 {
		t.Errorf("total = %d, want 60", total)
	}
}

func TestBuilderSignAndVerify(t *testing.T) {
	spender := mustKey(t)
	recipient := mustKey(t)

	funding := &Transaction{Outputs: []TransactionOutput{{Value: 100, Pubkey: spender.PublicKey(), UniqueID: [16]byte{7}}}}
	fundingOutHash := funding.Outputs[0].Hash()

	spend := NewBuilder().
		AddInput(fundingOutHash).
		AddOutput(100, recipient.PublicKey())
	if err := spend.Sign(spender); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	built := spend.Build()

	err := built.VerifySignatures(func(hash types.Hash) (TransactionOutput, bool) {
		if hash == fundingOutHash {
			return funding.Outputs[0], true
		}
		return TransactionOutput{}, false
	})
	if err != nil {
		t.Fatalf("VerifySignatures: %v", err)
	}
}
