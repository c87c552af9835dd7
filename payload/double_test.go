package payload

import (
	"strings"
	"testing"

	"github.com/AlexZinkM/wallet-sync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoubleEncryptedWallet(t *testing.T) (*Session, string) {
	t.Helper()
	s := newSyncedWallet(t, &fakeTransport{})
	seed := s.Payload().HDWallet().SeedHex
	s.Payload().LegacyAddresses = []model.LegacyAddress{{Address: "1A", Priv: "legacy-priv"}}
	require.NoError(t, s.EnableDoubleEncryption([]byte("second")))
	return s, seed
}

func TestEnableDoubleEncryption(t *testing.T) {
	s, seed := newDoubleEncryptedWallet(t)
	p := s.Payload()

	assert.True(t, p.DoubleEncrypted)
	assert.NotEmpty(t, p.DoublePasswordHash)
	assert.NotEqual(t, seed, p.HDWallet().SeedHex)
	assert.False(t, strings.HasPrefix(p.HDWallet().Accounts[0].XPriv, "xprv"))
	assert.NotEqual(t, "legacy-priv", p.LegacyAddresses[0].Priv)

	priv, ok := s.doubleDecrypt(p.LegacyAddresses[0].Priv, []byte("second"))
	require.True(t, ok)
	assert.Equal(t, "legacy-priv", priv)

	require.ErrorIs(t, s.EnableDoubleEncryption([]byte("again")), ErrAlreadyDoubleEncrypted)
}

func TestValidateSecondPassword(t *testing.T) {
	s, _ := newDoubleEncryptedWallet(t)

	assert.True(t, s.ValidateSecondPassword([]byte("second")))
	assert.False(t, s.ValidateSecondPassword([]byte("Second")))
	assert.False(t, s.ValidateSecondPassword(nil))

	plain := newSyncedWallet(t, &fakeTransport{})
	assert.False(t, plain.ValidateSecondPassword([]byte("second")))
}

func TestDecryptSeed(t *testing.T) {
	s, seed := newDoubleEncryptedWallet(t)

	got, err := s.DecryptSeed([]byte("second"))
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	_, err = s.DecryptSeed([]byte("wrong"))
	require.ErrorIs(t, err, ErrSecondPasswordMismatch)

	plain := newSyncedWallet(t, &fakeTransport{})
	_, err = plain.DecryptSeed([]byte("second"))
	require.ErrorIs(t, err, ErrNotDoubleEncrypted)
}

func TestSetSecondPasswordHD(t *testing.T) {
	s, _ := newDoubleEncryptedWallet(t)
	s.engine.Reset()

	require.ErrorIs(t, s.SetSecondPassword([]byte("wrong"), true), ErrSecondPasswordMismatch)
	assert.Equal(t, 0, s.engine.AccountCount())

	require.NoError(t, s.SetSecondPassword([]byte("second"), true))
	require.NoError(t, s.CheckEngineSync())
	assert.False(t, s.HasTempSecondPassword())
}

func TestSetSecondPasswordNonHD(t *testing.T) {
	s, _ := newDoubleEncryptedWallet(t)

	require.ErrorIs(t, s.SetSecondPassword([]byte("wrong"), false), ErrSecondPasswordMismatch)
	assert.False(t, s.HasTempSecondPassword())

	require.NoError(t, s.SetSecondPassword([]byte("second"), false))
	assert.True(t, s.HasTempSecondPassword())
}

func TestMnemonicForDoubleEncryptedWallet(t *testing.T) {
	s, _ := newDoubleEncryptedWallet(t)
	expected, err := s.engine.Mnemonic()
	require.NoError(t, err)

	_, err = s.MnemonicForDoubleEncryptedWallet()
	require.ErrorIs(t, err, ErrNoSecondPassword)

	s.SetTempSecondPassword([]byte("wrong"))
	_, err = s.MnemonicForDoubleEncryptedWallet()
	require.ErrorIs(t, err, ErrSecondPasswordMismatch)

	s.SetTempSecondPassword([]byte("second"))
	words, err := s.MnemonicForDoubleEncryptedWallet()
	require.NoError(t, err)
	assert.Len(t, words, 12)
	assert.Equal(t, expected, strings.Join(words, " "))
}
