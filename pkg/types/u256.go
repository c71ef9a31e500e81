package types

import (
	"math/big"
	"math/bits"
)

// U256 is an unsigned 256-bit integer stored as four little-endian limbs
// (limbs[0] is the least significant 64 bits). It is used for proof-of-work
// targets, which need more range than a uint64 but do not need the general
// arbitrary-precision machinery of math/big for everyday comparisons.
type U256 [4]uint64

// U256FromUint64 builds a U256 from a 64-bit value.
func U256FromUint64(v uint64) U256 {
	return U256{v, 0, 0, 0}
}

// IsZero reports whether u is zero.
func (u U256) IsZero() bool {
	return u == U256{}
}

// Cmp returns -1, 0, or 1 as u is less than, equal to, or greater than v.
func (u U256) Cmp(v U256) int {
	for i := 3; i >= 0; i-- {
		if u[i] != v[i] {
			if u[i] < v[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// LessOrEqual reports whether u <= v.
func (u U256) LessOrEqual(v U256) bool {
	return u.Cmp(v) <= 0
}

// Add returns u+v, wrapping modulo 2^256 on overflow.
func (u U256) Add(v U256) U256 {
	var out U256
	var carry uint64
	for i := 0; i < 4; i++ {
		out[i], carry = bits.Add64(u[i], v[i], carry)
	}
	return out
}

// Sub returns u-v, wrapping modulo 2^256 on underflow.
func (u U256) Sub(v U256) U256 {
	var out U256
	var borrow uint64
	for i := 0; i < 4; i++ {
		out[i], borrow = bits.Sub64(u[i], v[i], borrow)
	}
	return out
}

// Mul returns u*v truncated modulo 2^256.
func (u U256) Mul(v U256) U256 {
	return FromBig(new(big.Int).Mul(u.ToBig(), v.ToBig()))
}

// MulUint64 returns u*v truncated modulo 2^256.
func (u U256) MulUint64(v uint64) U256 {
	return u.Mul(U256FromUint64(v))
}

// DivUint64 returns u/v, discarding the remainder. Panics if v is zero.
func (u U256) DivUint64(v uint64) U256 {
	if v == 0 {
		panic("types: division by zero")
	}
	return FromBig(new(big.Int).Div(u.ToBig(), big.NewInt(0).SetUint64(v)))
}

// ToBig converts u to a *big.Int.
func (u U256) ToBig() *big.Int {
	b := make([]byte, 32)
	for i := 0; i < 4; i++ {
		off := (3 - i) * 8
		for j := 0; j < 8; j++ {
			b[off+j] = byte(u[i] >> (56 - 8*j))
		}
	}
	return new(big.Int).SetBytes(b)
}

// FromBig converts a non-negative *big.Int to a U256, truncating modulo 2^256.
func FromBig(v *big.Int) U256 {
	v = new(big.Int).Abs(v)
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	v = new(big.Int).Mod(v, mod)
	b := v.FillBytes(make([]byte, 32))
	var out U256
	for i := 0; i < 4; i++ {
		off := (3 - i) * 8
		var limb uint64
		for j := 0; j < 8; j++ {
			limb = limb<<8 | uint64(b[off+j])
		}
		out[i] = limb
	}
	return out
}

// Bytes returns the big-endian 32-byte representation of u, the same
// orientation used when comparing against a hash digest.
func (u U256) Bytes() [32]byte {
	var out [32]byte
	big := u.ToBig().FillBytes(make([]byte, 32))
	copy(out[:], big)
	return out
}

// String returns the decimal representation of u.
func (u U256) String() string {
	return u.ToBig().String()
}

// HashAsU256 interprets a hash digest as a big-endian 256-bit integer, the
// same interpretation used to compare a mined block header's hash against
// its target.
func HashAsU256(h Hash) U256 {
	return FromBig(new(big.Int).SetBytes(h[:]))
}

// MinTarget is the loosest allowed proof-of-work target, 2^224-1.
var MinTarget = FromBig(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 224), big.NewInt(1)))
