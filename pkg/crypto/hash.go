// Package crypto provides the cryptographic primitives used by the ledger:
// SHA-256 hashing and secp256k1/Schnorr signatures.
package crypto

import (
	"crypto/sha256"

	"github.com/ledgerchain/ledger/pkg/types"
)

// Hash computes the SHA-256 digest of the input data.
func Hash(data []byte) types.Hash {
	return sha256.Sum256(data)
}

// DoubleHash computes Hash(Hash(data)).
func DoubleHash(data []byte) types.Hash {
	first := Hash(data)
	return Hash(first[:])
}

// HashConcat hashes the concatenation of two hashes. Used to build merkle trees.
func HashConcat(a, b types.Hash) types.Hash {
	var buf [64]byte
	copy(buf[:32], a[:])
	copy(buf[32:], b[:])
	return Hash(buf[:])
}
