package block

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/ledgerchain/ledger/pkg/crypto"
	"github.com/ledgerchain/ledger/pkg/types"
)

// BlockHeader contains everything needed to prove a block's work and link
// it to its parent.
type BlockHeader struct {
	Timestamp     time.Time  `json:"timestamp"`
	Nonce         uint64     `json:"nonce"`
	PrevBlockHash types.Hash `json:"prev_block_hash"`
	MerkleRoot    types.Hash `json:"merkle_root"`
	Target        types.U256 `json:"target"`
}

// Hash computes the header hash used both for chain linkage and for
// measuring proof-of-work against Target.
func (h *BlockHeader) Hash() types.Hash {
	return crypto.Hash(h.SigningBytes())
}

// SigningBytes returns the canonical byte encoding of the header.
func (h *BlockHeader) SigningBytes() []byte {
	buf := make([]byte, 0, 8+8+32+32+32)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(h.Timestamp.Unix()))
	buf = binary.LittleEndian.AppendUint64(buf, h.Nonce)
	buf = append(buf, h.PrevBlockHash[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	targetBytes := h.Target.Bytes()
	buf = append(buf, targetBytes[:]...)
	return buf
}

// Mine searches for a nonce, bumping the timestamp on nonce exhaustion, such
// that the header's hash is at or below Target, trying at most steps
// candidates. It mutates the header in place as it searches.
//
// It returns true only if a solution was found within the step budget,
// leaving the header set to that solution. It returns false if the budget
// ran out first, leaving the header at whatever nonce/timestamp it last
// tried — callers that want to keep searching can call Mine again.
func (h *BlockHeader) Mine(steps uint64) bool {
	for i := uint64(0); i < steps; i++ {
		if types.HashAsU256(h.Hash()).LessOrEqual(h.Target) {
			return true
		}
		if h.Nonce == math.MaxUint64 {
			h.Nonce = 0
			h.Timestamp = h.Timestamp.Add(time.Second)
		} else {
			h.Nonce++
		}
	}
	return false
}
