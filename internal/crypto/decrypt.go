package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"unicode/utf8"
)

// Decrypt reverses Encrypt. It never fails loudly: ok is false whenever the
// password and iteration pair does not yield well-formed plaintext, so callers
// can chain fallbacks.
// password must be []byte for security (caller should zero it after use)
func Decrypt(ciphertext string, password []byte, iterations int) (plaintext []byte, ok bool) {
	if iterations < 1 {
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, false
	}

	// At least one block after the IV, block aligned
	if len(data) < ivLen+aes.BlockSize || len(data)%aes.BlockSize != 0 {
		return nil, false
	}

	iv, body := data[:ivLen], data[ivLen:]

	key := deriveKey(password, iv, iterations)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, false
	}

	out := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, body)

	plaintext, ok = unpadISO10126(out, aes.BlockSize)
	if !ok || !utf8.Valid(plaintext) {
		clear(out)
		return nil, false
	}

	return plaintext, true
}

func unpadISO10126(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 {
		return nil, false
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, false
	}
	return data[:len(data)-padLen], true
}
