// Package block defines block types, merkle trees, mining, and validation.
package block

import (
	"github.com/ledgerchain/ledger/pkg/tx"
	"github.com/ledgerchain/ledger/pkg/types"
)

// Block pairs a header with the transactions it commits to via MerkleRoot.
type Block struct {
	Header       BlockHeader     `json:"header"`
	Transactions []tx.Transaction `json:"transactions"`
}

// NewBlock creates a new block with the given header and transactions.
func NewBlock(header BlockHeader, txs []tx.Transaction) *Block {
	return &Block{Header: header, Transactions: txs}
}

// Hash returns the block's header hash.
func (b *Block) Hash() types.Hash {
	return b.Header.Hash()
}
