package crypto

// Cipher adapts the package functions to the primitives interface the sync engine consumes
type Cipher struct{}

// NewCipher returns the wallet cipher
func NewCipher() Cipher {
	return Cipher{}
}

func (Cipher) Encrypt(plaintext, password []byte, iterations int) (string, error) {
	return Encrypt(plaintext, password, iterations)
}

func (Cipher) Decrypt(ciphertext string, password []byte, iterations int) ([]byte, bool) {
	return Decrypt(ciphertext, password, iterations)
}

func (Cipher) DigestHex(data []byte) string {
	return DigestHex(data)
}
