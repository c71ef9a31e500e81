package chain

import (
	"testing"
	"time"

	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/tx"
	"github.com/ledgerchain/ledger/pkg/types"
)

func fundedChain(t *testing.T, bc *Blockchain, owner crypto.PublicKey, value uint64) types.Hash {
	t.Helper()
	out := tx.TransactionOutput{Value: value, Pubkey: owner, UniqueID: [tx.UniqueIDSize]byte{1}}
	bc.UTXOs[out.Hash()] = UTXOEntry{Output: out}
	return out.Hash()
}

func TestAddToMempoolAccepts(t *testing.T) {
	bc := New(types.MinTarget)
	spender := mustKey(t)
	recipient := mustKey(t)

	fundingHash := fundedChain(t, bc, spender.PublicKey(), 100)

	b := tx.NewBuilder().AddInput(fundingHash).AddOutput(100, recipient.PublicKey())
	if err := b.Sign(spender); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	spendTx := *b.Build()

	if err := bc.AddToMempool(spendTx); err != nil {
		t.Fatalf("AddToMempool: %v", err)
	}
	if len(bc.Mempool) != 1 {
		t.Fatalf("expected 1 mempool entry, got %d", len(bc.Mempool))
	}
	if !bc.IsReserved(fundingHash) {
		t.Error("funding output should be reserved after admission")
	}
}

func TestAddToMempoolConflictReplacement(t *testing.T) {
	bc := New(types.MinTarget)
	spender := mustKey(t)
	recipientA := mustKey(t)
	recipientB := mustKey(t)

	fundingHash := fundedChain(t, bc, spender.PublicKey(), 100)

	a := tx.NewBuilder().AddInput(fundingHash).AddOutput(100, recipientA.PublicKey())
	a.Sign(spender)
	txA := *a.Build()
	if err := bc.AddToMempool(txA); err != nil {
		t.Fatalf("AddToMempool txA: %v", err)
	}

	b := tx.NewBuilder().AddInput(fundingHash).AddOutput(90, recipientB.PublicKey())
	b.Sign(spender)
	txB := *b.Build()
	if err := bc.AddToMempool(txB); err != nil {
		t.Fatalf("AddToMempool txB: %v", err)
	}

	if len(bc.Mempool) != 1 {
		t.Fatalf("expected conflicting tx to replace the original, got %d entries", len(bc.Mempool))
	}
	if bc.Mempool[0].Tx.Hash() != txB.Hash() {
		t.Error("surviving mempool entry should be the replacement transaction")
	}
	if !bc.IsReserved(fundingHash) {
		t.Error("funding output should still be reserved by the replacement")
	}
}

func TestAddToMempoolSortsAscendingByFee(t *testing.T) {
	bc := New(types.MinTarget)
	spender := mustKey(t)
	recipient := mustKey(t)

	fundings := make([]types.Hash, 0, 3)
	for i := 0; i < 3; i++ {
		out := tx.TransactionOutput{Value: 100, Pubkey: spender.PublicKey(), UniqueID: [tx.UniqueIDSize]byte{byte(i + 1)}}
		bc.UTXOs[out.Hash()] = UTXOEntry{Output: out}
		fundings = append(fundings, out.Hash())
	}

	fees := []uint64{10, 30, 20}
	for i, fee := range fees {
		b := tx.NewBuilder().AddInput(fundings[i]).AddOutput(100-fee, recipient.PublicKey())
		if err := b.Sign(spender); err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if err := bc.AddToMempool(*b.Build()); err != nil {
			t.Fatalf("AddToMempool fee=%d: %v", fee, err)
		}
	}

	if len(bc.Mempool) != 3 {
		t.Fatalf("expected 3 mempool entries, got %d", len(bc.Mempool))
	}
	view := utxoView{bc.UTXOs}
	var got []uint64
	for _, e := range bc.Mempool {
		got = append(got, minerFee(e.Tx, view))
	}
	want := []uint64{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mempool order = %v, want %v", got, want)
			break
		}
	}
}

func TestAddToMempoolUnknownInput(t *testing.T) {
	bc := New(types.MinTarget)
	spender := mustKey(t)
	recipient := mustKey(t)

	spend := tx.NewBuilder().AddInput(types.Hash{0xee}).AddOutput(1, recipient.PublicKey())
	spend.Sign(spender)
	built := *spend.Build()

	if err := bc.AddToMempool(built); err == nil {
		t.Error("expected error for input referencing unknown output")
	}
}

func TestCleanupMempoolEvictsStale(t *testing.T) {
	bc := New(types.MinTarget)
	spender := mustKey(t)
	recipient := mustKey(t)
	fundingHash := fundedChain(t, bc, spender.PublicKey(), 100)

	b := tx.NewBuilder().AddInput(fundingHash).AddOutput(100, recipient.PublicKey())
	b.Sign(spender)
	built := *b.Build()
	if err := bc.AddToMempool(built); err != nil {
		t.Fatalf("AddToMempool: %v", err)
	}

	bc.Mempool[0].EnqueuedAt = time.Now().Add(-time.Hour)
	evicted := bc.CleanupMempool(time.Minute)

	if len(evicted) != 1 {
		t.Fatalf("expected 1 evicted tx, got %d", len(evicted))
	}
	if len(bc.Mempool) != 0 {
		t.Error("mempool should be empty after eviction")
	}
	if bc.IsReserved(fundingHash) {
		t.Error("funding output should be unreserved after eviction")
	}
}

func TestCleanupMempoolKeepsFresh(t *testing.T) {
	bc := New(types.MinTarget)
	spender := mustKey(t)
	recipient := mustKey(t)
	fundingHash := fundedChain(t, bc, spender.PublicKey(), 100)

	b := tx.NewBuilder().AddInput(fundingHash).AddOutput(100, recipient.PublicKey())
	b.Sign(spender)
	built := *b.Build()
	if err := bc.AddToMempool(built); err != nil {
		t.Fatalf("AddToMempool: %v", err)
	}

	evicted := bc.CleanupMempool(time.Hour)
	if len(evicted) != 0 {
		t.Errorf("expected no evictions, got %d", len(evicted))
	}
	if len(bc.Mempool) != 1 {
		t.Error("fresh entry should remain in mempool")
	}
}
