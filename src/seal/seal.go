// Package seal derives symmetric keys from a player passphrase and
// encrypts/decrypts proof-file payloads with them. It is adapted from the
// teacher's password-integration path for time-lock puzzles: there, a
// passphrase was mixed into the puzzle base G so that each wrong guess
// forced a full re-solve; here there is no puzzle base to mix into (the
// vdf engine's modulus is fixed and public), so the passphrase instead
// gates a ChaCha20-Poly1305 seal placed around an already-computed proof
// record before it is written to disk.
package seal

import (
	"crypto/rand"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Argon2idParams holds the parameters for the Argon2id KDF.
type Argon2idParams struct {
	Memory      uint32 // memory cost in KiB
	Time        uint32 // time cost (iterations)
	Parallelism uint8  // parallelism factor
	KeyLen      uint32 // output key length
}

// DefaultArgon2idParams provides conservative Argon2id parameters for
// sealing proof files.
var DefaultArgon2idParams = Argon2idParams{
	Memory:      64 * 1024,
	Time:        3,
	Parallelism: 1,
	KeyLen:      32,
}

// NewSalt returns a fresh random 16-byte salt.
func NewSalt() ([16]byte, error) {
	var salt [16]byte
	_, err := rand.Read(salt[:])
	return salt, err
}

// DeriveKey derives a 32-byte ChaCha20-Poly1305 key from a passphrase and
// salt using Argon2id.
func DeriveKey(passphrase []byte, salt [16]byte, params Argon2idParams) [32]byte {
	raw := argon2.IDKey(passphrase, salt[:], params.Time, params.Memory, params.Parallelism, params.KeyLen)
	var key [32]byte
	copy(key[:], raw)
	return key
}

// Encrypt seals plaintext under key, returning nonce||ciphertext-with-tag
// split into its two parts for storage in types.SealedProof.
func Encrypt(key [32]byte, plaintext []byte) (nonce [12]byte, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nonce, nil, err
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return nonce, nil, err
	}
	ciphertext = aead.Seal(nil, nonce[:], plaintext, nil)
	return nonce, ciphertext, nil
}

// Decrypt opens a ciphertext produced by Encrypt.
func Decrypt(key [32]byte, nonce [12]byte, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, errors.New("seal: wrong passphrase or corrupted proof file")
	}
	return plaintext, nil
}

// EncodeParams encodes Argon2idParams into the 8-byte on-disk form used by
// types.SealedProof.KdfParams: memory then time, each big-endian uint32.
// Parallelism and key length are fixed at DefaultArgon2idParams' values
// and are not stored.
func EncodeParams(p Argon2idParams) [8]byte {
	var out [8]byte
	binary.BigEndian.PutUint32(out[0:4], p.Memory)
	binary.BigEndian.PutUint32(out[4:8], p.Time)
	return out
}

// DecodeParams reverses EncodeParams.
func DecodeParams(b [8]byte) Argon2idParams {
	return Argon2idParams{
		Memory:      binary.BigEndian.Uint32(b[0:4]),
		Time:        binary.BigEndian.Uint32(b[4:8]),
		Parallelism: DefaultArgon2idParams.Parallelism,
		KeyLen:      DefaultArgon2idParams.KeyLen,
	}
}
