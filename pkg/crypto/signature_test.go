package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	pub := key.PublicKey()
	if len(pub) != PublicKeySize {
		t.Errorf("PublicKey() length = %d, want %d", len(pub), PublicKeySize)
	}

	if len(key.Bytes()) != 32 {
		t.Errorf("Bytes() length = %d, want 32", len(key.Bytes()))
	}
}

func TestGenerateKey_Unique(t *testing.T) {
	k1, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	k2, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	if bytes.Equal(k1.Bytes(), k2.Bytes()) {
		t.Error("two generated keys should not be identical")
	}
}

func TestPrivateKeyFromBytes(t *testing.T) {
	original, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	restored, err := PrivateKeyFromBytes(original.Bytes())
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	if restored.PublicKey() != original.PublicKey() {
		t.Error("restored key should have same public key")
	}
}

func TestPrivateKeyFromBytes_InvalidLength(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, 16)},
		{"too long", make([]byte, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PrivateKeyFromBytes(tt.data); err == nil {
				t.Error("expected error for invalid key length")
			}
		})
	}
}

func TestSignVerify(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	hash := Hash([]byte("test message"))
	sig, err := key.Sign(hash)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if !VerifySignature(hash, sig, key.PublicKey()) {
		t.Error("signature should verify against the correct key and hash")
	}
}

func TestSignDeterministic(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	hash := Hash([]byte("deterministic test"))
	sig1, err := key.Sign(hash)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	sig2, err := key.Sign(hash)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if sig1 != sig2 {
		t.Error("Schnorr signatures should be deterministic (same key + same hash = same sig)")
	}
}

func TestVerifyWrongHash(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	hash := Hash([]byte("message"))
	sig, err := key.Sign(hash)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	wrongHash := Hash([]byte("different message"))
	if VerifySignature(wrongHash, sig, key.PublicKey()) {
		t.Error("signature should not verify with wrong hash")
	}
}

func TestVerifyWrongKey(t *testing.T) {
	key1, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	key2, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	hash := Hash([]byte("message"))
	sig, err := key1.Sign(hash)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if VerifySignature(hash, sig, key2.PublicKey()) {
		t.Error("signature should not verify with wrong public key")
	}
}

func TestVerifyCorruptedSignature(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	hash := Hash([]byte("message"))
	sig, err := key.Sign(hash)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	sig[0] ^= 0x01
	if VerifySignature(hash, sig, key.PublicKey()) {
		t.Error("corrupted signature should not verify")
	}
}

func TestVerifyGarbagePublicKey(t *testing.T) {
	var garbage PublicKey
	copy(garbage[:], []byte("not a real compressed point......"))

	if VerifySignature(Hash([]byte("x")), Signature{}, garbage) {
		t.Error("should return false for an unparseable public key")
	}
}

func TestPrivateKeyZero(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	hash := Hash([]byte("test"))
	if _, err := key.Sign(hash); err != nil {
		t.Fatalf("Sign() should work before Zero(): %v", err)
	}

	key.Zero()

	for _, b := range key.Bytes() {
		if b != 0 {
			t.Fatal("Bytes() should return all zeros after Zero()")
		}
	}
}

func TestKeyFileRoundTripUnencrypted(t *testing.T) {
	dir := t.TempDir()
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	privPath := filepath.Join(dir, "alice.priv.cbor")
	pubPath := filepath.Join(dir, "alice.pub.pem")

	if err := SavePrivateKey(privPath, key, nil); err != nil {
		t.Fatalf("SavePrivateKey: %v", err)
	}
	if err := SavePublicKeyPEM(pubPath, key.PublicKey()); err != nil {
		t.Fatalf("SavePublicKeyPEM: %v", err)
	}

	restored, err := LoadPrivateKey(privPath, nil)
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if restored.PublicKey() != key.PublicKey() {
		t.Error("restored private key has different public key")
	}

	pub, err := LoadPublicKeyPEM(pubPath)
	if err != nil {
		t.Fatalf("LoadPublicKeyPEM: %v", err)
	}
	if pub != key.PublicKey() {
		t.Error("loaded public key does not match saved key")
	}

	if data, err := os.ReadFile(pubPath); err != nil || !bytes.Contains(data, []byte("PUBLIC KEY")) {
		t.Error("public key file should be PEM-encoded")
	}
}

func TestKeyFileRoundTripEncrypted(t *testing.T) {
	dir := t.TempDir()
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	privPath := filepath.Join(dir, "bob.priv.cbor")
	passphrase := []byte("correct horse battery staple")

	if err := SavePrivateKey(privPath, key, passphrase); err != nil {
		t.Fatalf("SavePrivateKey: %v", err)
	}

	restored, err := LoadPrivateKey(privPath, passphrase)
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if restored.PublicKey() != key.PublicKey() {
		t.Error("restored private key has different public key")
	}

	if _, err := LoadPrivateKey(privPath, []byte("wrong passphrase")); err == nil {
		t.Error("expected error when loading with the wrong passphrase")
	}
}
