package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// DigestHex returns the lowercase hex SHA-256 of data
func DigestHex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashSecondPassword computes the stored second password hash:
// SHA-256 over sharedKey+password, re-hashed until iterations rounds are done.
func HashSecondPassword(sharedKey string, password []byte, iterations int) string {
	if iterations < 1 {
		iterations = 1
	}

	material := make([]byte, 0, len(sharedKey)+len(password))
	material = append(material, sharedKey...)
	material = append(material, password...)
	defer clear(material)

	sum := sha256.Sum256(material)
	for i := 1; i < iterations; i++ {
		sum = sha256.Sum256(sum[:])
	}
	return hex.EncodeToString(sum[:])
}

// ValidateSecondPassword reports whether password hashes to expectedHash.
// The comparison does not exit early on the first differing byte.
func ValidateSecondPassword(expectedHash, sharedKey string, password []byte, iterations int) bool {
	if expectedHash == "" {
		return false
	}
	actual := HashSecondPassword(sharedKey, password, iterations)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(expectedHash)) == 1
}
