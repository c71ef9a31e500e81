package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"

	"github.com/ledgerchain/ledger/pkg/types"
)

// PublicKeySize is the length of a compressed secp256k1 public key.
const PublicKeySize = 33

// PublicKey is a compressed secp256k1 public key.
type PublicKey [PublicKeySize]byte

// Signature is a serialized Schnorr signature over secp256k1.
type Signature [schnorr.SignatureSize]byte

// PrivateKey wraps a secp256k1 private key used for Schnorr signing.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 private key.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret scalar.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	return &PrivateKey{key: secp256k1.PrivKeyFromBytes(b)}, nil
}

// Sign produces a Schnorr signature over a 32-byte hash.
func (pk *PrivateKey) Sign(hash types.Hash) (Signature, error) {
	sig, err := schnorr.Sign(pk.key, hash[:])
	if err != nil {
		return Signature{}, fmt.Errorf("schnorr sign: %w", err)
	}
	var out Signature
	copy(out[:], sig.Serialize())
	return out, nil
}

// PublicKey returns the compressed public key corresponding to pk.
func (pk *PrivateKey) PublicKey() PublicKey {
	var out PublicKey
	copy(out[:], pk.key.PubKey().SerializeCompressed())
	return out
}

// Bytes returns the 32-byte private key scalar.
func (pk *PrivateKey) Bytes() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory. The PrivateKey must not be
// used again afterward.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// VerifySignature checks a Schnorr signature against a hash and a
// compressed public key. Returns false on any parse or verification failure.
func VerifySignature(hash types.Hash, sig Signature, pub PublicKey) bool {
	pubKey, err := secp256k1.ParsePubKey(pub[:])
	if err != nil {
		return false
	}
	parsed, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false
	}
	return parsed.Verify(hash[:], pubKey)
}

// String returns the hex encoding of the public key.
func (p PublicKey) String() string {
	return fmt.Sprintf("%x", p[:])
}
