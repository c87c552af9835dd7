package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Wallet cipher parameters. The remote store and every existing wallet
	// use AES-256-CBC keyed by PBKDF2-HMAC-SHA1 with the IV doubling as salt.
	keyLen = 32
	ivLen  = aes.BlockSize
)

// ErrInvalidIterations is returned when the work factor is below one.
var ErrInvalidIterations = errors.New("pbkdf2 iterations must be at least 1")

// Encrypt encrypts plaintext under password and returns base64(IV || ciphertext).
// password must be []byte for security (caller should zero it after use)
func Encrypt(plaintext, password []byte, iterations int) (string, error) {
	if iterations < 1 {
		return "", ErrInvalidIterations
	}

	// Generate IV, it is also the PBKDF2 salt
	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	key := deriveKey(password, iv, iterations)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	padded, err := padISO10126(plaintext, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("failed to pad plaintext: %w", err)
	}
	defer clear(padded)

	out := make([]byte, ivLen+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[ivLen:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// deriveKey derives a 32 byte AES key from password and salt
func deriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, keyLen, sha1.New)
}

// padISO10126 appends random filler bytes followed by the pad length
func padISO10126(data []byte, blockSize int) ([]byte, error) {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	if padLen > 1 {
		if _, err := io.ReadFull(rand.Reader, out[len(data):len(out)-1]); err != nil {
			return nil, err
		}
	}
	out[len(out)-1] = byte(padLen)
	return out, nil
}
