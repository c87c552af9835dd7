package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/wallet-sync/internal/crypto"
	"github.com/AlexZinkM/wallet-sync/internal/model"
	"github.com/AlexZinkM/wallet-sync/payload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "correctPassword"
	testWallet   = `{"guid":"g1","sharedKey":"s1","double_encryption":false,"options":{},"keys":[],"tx_notes":{"ab":"rent"}}`
)

func writeEnvelope(t *testing.T, iterations int) string {
	t.Helper()
	envelope, err := payload.SealEnvelope(crypto.NewCipher(), []byte(testWallet), []byte(testPassword), iterations, model.VersionLegacy)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "envelope.json")
	require.NoError(t, os.WriteFile(path, envelope, 0o600))
	return path
}

// passwordReader hands out a buffer the test keeps a reference to
func passwordReader(buf *[]byte) func(string) ([]byte, error) {
	return func(string) ([]byte, error) {
		*buf = []byte(testPassword)
		return *buf, nil
	}
}

func TestRunReseals(t *testing.T) {
	path := writeEnvelope(t, 7000)
	var password []byte
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{path}, 5000, passwordReader(&password), &stdout, &stderr))

	resp, err := payload.ParseServerResponse(stdout.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 5000, resp.Iterations)

	plaintext, used, err := payload.OpenEnvelope(crypto.NewCipher(), resp.Ciphertext, []byte(testPassword), resp.Iterations)
	require.NoError(t, err)
	assert.Equal(t, 5000, used)
	assert.JSONEq(t, testWallet, string(plaintext))

	assert.Contains(t, stderr.String(), "opened with 7000 iterations, sealed with 5000")
	assert.Contains(t, stderr.String(), crypto.DigestHex(stdout.Bytes()))
	assert.Equal(t, make([]byte, len(testPassword)), password)
}

func TestRunClearsPasswordOnFailure(t *testing.T) {
	path := writeEnvelope(t, 5000)
	var password []byte
	var stdout, stderr bytes.Buffer

	err := run([]string{path}, 0, passwordReader(&password), &stdout, &stderr)
	require.ErrorIs(t, err, payload.ErrEncryption)

	assert.Empty(t, stdout.String())
	assert.Equal(t, make([]byte, len(testPassword)), password)
}

func TestRunWrongPassword(t *testing.T) {
	path := writeEnvelope(t, 5000)
	wrong := func(string) ([]byte, error) { return []byte("nope"), nil }

	err := run([]string{path}, 5000, wrong, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, payload.ErrDecryption)
}

func TestRunUsage(t *testing.T) {
	err := run(nil, 5000, passwordReader(new([]byte)), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errUsage)

	err = run([]string{filepath.Join(t.TempDir(), "missing.json")}, 5000, passwordReader(new([]byte)), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
