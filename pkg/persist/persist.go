// Package persist serializes blocks, transactions, and blockchains to
// canonical CBOR for on-disk storage and network transfer.
package persist

import (
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/ledgerchain/ledger/internal/chain"
	"github.com/ledgerchain/ledger/pkg/block"
	"github.com/ledgerchain/ledger/pkg/tx"
)

var encMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	mode, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// EncodeBlock returns the canonical CBOR encoding of a block.
func EncodeBlock(b *block.Block) ([]byte, error) {
	return encMode.Marshal(b)
}

// DecodeBlock decodes a block previously written by EncodeBlock.
func DecodeBlock(data []byte) (*block.Block, error) {
	var b block.Block
	if err := cbor.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// SaveBlock writes a block to path as canonical CBOR.
func SaveBlock(path string, b *block.Block) error {
	data, err := EncodeBlock(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadBlock reads and decodes a block previously written by SaveBlock.
func LoadBlock(path string) (*block.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBlock(data)
}

// EncodeTransaction returns the canonical CBOR encoding of a transaction.
func EncodeTransaction(t *tx.Transaction) ([]byte, error) {
	return encMode.Marshal(t)
}

// DecodeTransaction decodes a transaction previously written by EncodeTransaction.
func DecodeTransaction(data []byte) (*tx.Transaction, error) {
	var t tx.Transaction
	if err := cbor.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTransaction writes a transaction to path as canonical CBOR.
func SaveTransaction(path string, t *tx.Transaction) error {
	data, err := EncodeTransaction(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTransaction reads and decodes a transaction previously written by SaveTransaction.
func LoadTransaction(path string) (*tx.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeTransaction(data)
}

// blockchainWire is the on-disk shape of a Blockchain: identical to
// chain.Blockchain but without the Mempool field, which is never
// persisted — a restarted node starts with an empty mempool.
type blockchainWire struct {
	UTXOs  map[[32]byte]chain.UTXOEntry
	Blocks []block.Block
	Target [4]uint64
}

// EncodeBlockchain returns the canonical CBOR encoding of a blockchain,
// omitting its Mempool.
func EncodeBlockchain(bc *chain.Blockchain) ([]byte, error) {
	w := blockchainWire{
		UTXOs:  make(map[[32]byte]chain.UTXOEntry, len(bc.UTXOs)),
		Blocks: bc.Blocks,
		Target: bc.Target,
	}
	for h, e := range bc.UTXOs {
		w.UTXOs[h] = e
	}
	return encMode.Marshal(w)
}

// DecodeBlockchain decodes a blockchain previously written by
// EncodeBlockchain. The returned blockchain's Mempool is always empty.
func DecodeBlockchain(data []byte) (*chain.Blockchain, error) {
	var w blockchainWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	bc := chain.New(w.Target)
	bc.Blocks = w.Blocks
	for h, e := range w.UTXOs {
		bc.UTXOs[h] = e
	}
	return bc, nil
}

// SaveBlockchain writes a blockchain to path as canonical CBOR, excluding
// its mempool.
func SaveBlockchain(path string, bc *chain.Blockchain) error {
	data, err := EncodeBlockchain(bc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadBlockchain reads and decodes a blockchain previously written by
// SaveBlockchain, defaulting its mempool to empty.
func LoadBlockchain(path string) (*chain.Blockchain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBlockchain(data)
}
