package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPayload = `{"guid":"g1","sharedKey":"s1","double_encryption":false,"options":{},"keys":[]}`

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, iterations := range []int{1, 10, 5000} {
		ct, err := Encrypt([]byte(testPayload), []byte("correctPassword"), iterations)
		require.NoError(t, err)

		pt, ok := Decrypt(ct, []byte("correctPassword"), iterations)
		require.True(t, ok, "iterations %d", iterations)
		assert.Equal(t, testPayload, string(pt))
	}
}

func TestEncryptBlockAlignedPlaintext(t *testing.T) {
	plaintext := []byte("0123456789abcdef") // exactly one block, gets a full pad block

	ct, err := Encrypt(plaintext, []byte("pw"), 10)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)
	assert.Len(t, raw, ivLen+32)

	pt, ok := Decrypt(ct, []byte("pw"), 10)
	require.True(t, ok)
	assert.Equal(t, plaintext, pt)
}

func TestEncryptIsRandomized(t *testing.T) {
	a, err := Encrypt([]byte(testPayload), []byte("pw"), 10)
	require.NoError(t, err)
	b, err := Encrypt([]byte(testPayload), []byte("pw"), 10)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEncryptInvalidIterations(t *testing.T) {
	_, err := Encrypt([]byte("x"), []byte("pw"), 0)
	require.ErrorIs(t, err, ErrInvalidIterations)
}

func TestDecryptWrongPasswordOrIterations(t *testing.T) {
	ct, err := Encrypt([]byte(testPayload), []byte("correctPassword"), 10)
	require.NoError(t, err)

	_, ok := Decrypt(ct, []byte("wrongPassword"), 10)
	assert.False(t, ok)

	_, ok = Decrypt(ct, []byte("correctPassword"), 5000)
	assert.False(t, ok)
}

func TestDecryptGarbageNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"not base64 !!",
		base64.StdEncoding.EncodeToString([]byte("short")),
		base64.StdEncoding.EncodeToString(make([]byte, 33)),
		base64.StdEncoding.EncodeToString(make([]byte, 64)),
	}
	for _, in := range inputs {
		pt, ok := Decrypt(in, []byte("pw"), 10)
		assert.False(t, ok, "input %q", in)
		assert.Nil(t, pt)
	}

	_, ok := Decrypt("AAAA", []byte("pw"), 0)
	assert.False(t, ok)
}

func TestDigestHex(t *testing.T) {
	// SHA-256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", DigestHex([]byte("abc")))

	envelope := []byte(`{"version":3.0,"pbkdf2_iterations":5000,"payload":"AAAA"}`)
	changed := append([]byte(nil), envelope...)
	changed[len(changed)-3] = 'B'

	assert.Equal(t, DigestHex(envelope), DigestHex(envelope))
	assert.NotEqual(t, DigestHex(envelope), DigestHex(changed))
}

func TestSecondPasswordHash(t *testing.T) {
	hash := HashSecondPassword("s1", []byte("second"), 5000)
	assert.Len(t, hash, 64)

	assert.True(t, ValidateSecondPassword(hash, "s1", []byte("second"), 5000))
	assert.False(t, ValidateSecondPassword(hash, "s1", []byte("Second"), 5000))
	assert.False(t, ValidateSecondPassword(hash, "s2", []byte("second"), 5000))
	assert.False(t, ValidateSecondPassword(hash, "s1", []byte("second"), 4999))
	assert.False(t, ValidateSecondPassword("", "s1", []byte("second"), 5000))
}

func TestSecondPasswordHashSingleRound(t *testing.T) {
	assert.Equal(t, DigestHex([]byte("s1second")), HashSecondPassword("s1", []byte("second"), 1))
}
