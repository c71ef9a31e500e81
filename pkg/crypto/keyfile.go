package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/scrypt"
)

const pemBlockType = "PUBLIC KEY"

// scrypt parameters for passphrase-based private key encryption. These are
// deliberately modest so key loading stays fast on commodity hardware; they
// are not meant to resist a determined offline attacker with custom ASICs.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltSize     = 16
	nonceSize    = 12
)

// privateKeyFile is the CBOR-encoded contents of a "<name>.priv.cbor" file.
// When Salt is empty the Data field holds the raw 32-byte scalar; otherwise
// Data holds an AES-256-GCM ciphertext of the scalar, sealed with a key
// derived from a caller-supplied passphrase via scrypt.
type privateKeyFile struct {
	Salt  []byte `cbor:"salt,omitempty"`
	Nonce []byte `cbor:"nonce,omitempty"`
	Data  []byte `cbor:"data"`
}

// SavePrivateKey writes pk to path as CBOR. When passphrase is non-empty the
// scalar is encrypted with a key derived from it via scrypt.
func SavePrivateKey(path string, pk *PrivateKey, passphrase []byte) error {
	var file privateKeyFile
	if len(passphrase) == 0 {
		file.Data = pk.Bytes()
	} else {
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
		if err != nil {
			return fmt.Errorf("derive key: %w", err)
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return fmt.Errorf("new cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return fmt.Errorf("new gcm: %w", err)
		}
		nonce := make([]byte, nonceSize)
		if _, err := rand.Read(nonce); err != nil {
			return fmt.Errorf("generate nonce: %w", err)
		}
		file.Salt = salt
		file.Nonce = nonce
		file.Data = gcm.Seal(nil, nonce, pk.Bytes(), nil)
	}

	encoded, err := cbor.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadPrivateKey reads and decodes a "<name>.priv.cbor" file. passphrase must
// match the one used when the key was saved, or be empty if the key was
// saved unencrypted.
func LoadPrivateKey(path string, passphrase []byte) (*PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var file privateKeyFile
	if err := cbor.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}

	scalar := file.Data
	if len(file.Salt) > 0 {
		key, err := scrypt.Key(passphrase, file.Salt, scryptN, scryptR, scryptP, scryptKeyLen)
		if err != nil {
			return nil, fmt.Errorf("derive key: %w", err)
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("new cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("new gcm: %w", err)
		}
		scalar, err = gcm.Open(nil, file.Nonce, file.Data, nil)
		if err != nil {
			return nil, fmt.Errorf("decrypt private key: wrong passphrase?: %w", err)
		}
	}
	return PrivateKeyFromBytes(scalar)
}

// SavePublicKeyPEM writes pub to path as a PEM-encoded "<name>.pub.pem" file.
func SavePublicKeyPEM(path string, pub PublicKey) error {
	block := &pem.Block{Type: pemBlockType, Bytes: pub[:]}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadPublicKeyPEM reads a "<name>.pub.pem" file written by SavePublicKeyPEM.
func LoadPublicKeyPEM(path string) (PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PublicKey{}, fmt.Errorf("read %s: %w", path, err)
	}
	block, _ := pem.Decode(raw)
	if block == nil || block.Type != pemBlockType {
		return PublicKey{}, fmt.Errorf("%s: not a PEM public key file", path)
	}
	if len(block.Bytes) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("%s: public key must be %d bytes, got %d", path, PublicKeySize, len(block.Bytes))
	}
	var pub PublicKey
	copy(pub[:], block.Bytes)
	return pub, nil
}
