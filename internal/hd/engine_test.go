package hd

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BIP39 test vector entropy
const testSeedHex = "00000000000000000000000000000000"

func TestNewWallet(t *testing.T) {
	e := NewEngine(nil)

	seedHex, accounts, err := e.NewWallet()
	require.NoError(t, err)

	assert.Len(t, seedHex, 32)
	require.Len(t, accounts, 1)
	assert.True(t, strings.HasPrefix(accounts[0].XPub, "xpub"))
	assert.True(t, strings.HasPrefix(accounts[0].XPriv, "xprv"))
	assert.Equal(t, 1, e.AccountCount())
}

func TestRestoreIsDeterministic(t *testing.T) {
	a := NewEngine(&chaincfg.MainNetParams)
	require.NoError(t, a.RestoreWithPrivateKeys(testSeedHex, 2))

	b := NewEngine(&chaincfg.MainNetParams)
	require.NoError(t, b.RestoreWithPrivateKeys(testSeedHex, 1))
	next, err := b.DeriveNextAccount("Savings")
	require.NoError(t, err)

	assert.Equal(t, 2, a.AccountCount())
	assert.Equal(t, a.accounts[1], next)
	assert.NotEqual(t, a.accounts[0].XPub, a.accounts[1].XPub)
}

func TestRestoreReplacesState(t *testing.T) {
	e := NewEngine(nil)
	_, _, err := e.NewWallet()
	require.NoError(t, err)

	require.NoError(t, e.RestoreWithPrivateKeys(testSeedHex, 0))
	assert.Equal(t, 0, e.AccountCount())
}

func TestMnemonic(t *testing.T) {
	e := NewEngine(nil)
	require.NoError(t, e.RestoreWithPrivateKeys(testSeedHex, 1))

	phrase, err := e.Mnemonic()
	require.NoError(t, err)
	assert.Equal(t, "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", phrase)
}

func TestDeriveWithoutSeed(t *testing.T) {
	e := NewEngine(nil)

	_, err := e.DeriveNextAccount("x")
	require.ErrorIs(t, err, ErrNoPrivateKeys)

	_, err = e.Mnemonic()
	require.ErrorIs(t, err, ErrNoPrivateKeys)
}

func TestRestoreInvalidSeed(t *testing.T) {
	e := NewEngine(nil)

	require.ErrorIs(t, e.RestoreWithPrivateKeys("zz", 1), ErrInvalidSeed)
	// 5 bytes is not a valid BIP39 entropy length
	require.ErrorIs(t, e.RestoreWithPrivateKeys("0102030405", 1), ErrInvalidSeed)
}

func TestParamsForNetwork(t *testing.T) {
	p, err := ParamsForNetwork("testnet")
	require.NoError(t, err)
	assert.Equal(t, chaincfg.TestNet3Params.Name, p.Name)

	_, err = ParamsForNetwork("simnet")
	require.Error(t, err)
}

func TestAddressFromAccountXPub(t *testing.T) {
	e := NewEngine(nil)
	require.NoError(t, e.RestoreWithPrivateKeys(testSeedHex, 1))
	acct := e.accounts[0]

	// BIP44 vector for the all-zero entropy mnemonic, m/44'/0'/0'/0/0
	addr, err := e.Address(acct.XPub, ReceiveChain, 0)
	require.NoError(t, err)
	assert.Equal(t, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", addr)

	fromPriv, err := e.Address(acct.XPriv, ReceiveChain, 0)
	require.NoError(t, err)
	assert.Equal(t, addr, fromPriv)

	change, err := e.Address(acct.XPub, ChangeChain, 0)
	require.NoError(t, err)
	assert.NotEqual(t, addr, change)
	assert.True(t, strings.HasPrefix(change, "1"))
}

func TestPrivateKeyMatchesAddress(t *testing.T) {
	e := NewEngine(nil)
	require.NoError(t, e.RestoreWithPrivateKeys(testSeedHex, 1))
	acct := e.accounts[0]

	wifStr, err := e.PrivateKey(acct.XPriv, ChangeChain, 2)
	require.NoError(t, err)

	wif, err := btcutil.DecodeWIF(wifStr)
	require.NoError(t, err)
	assert.True(t, wif.CompressPubKey)
	assert.True(t, wif.IsForNet(&chaincfg.MainNetParams))

	pkh, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(wif.SerializePubKey()), &chaincfg.MainNetParams)
	require.NoError(t, err)
	addr, err := e.Address(acct.XPub, ChangeChain, 2)
	require.NoError(t, err)
	assert.Equal(t, addr, pkh.EncodeAddress())
}

func TestPrivateKeyFromXPub(t *testing.T) {
	e := NewEngine(nil)
	require.NoError(t, e.RestoreWithPrivateKeys(testSeedHex, 1))

	_, err := e.PrivateKey(e.accounts[0].XPub, ReceiveChain, 0)
	assert.ErrorIs(t, err, ErrNoPrivateKeys)
}

func TestAddressRejectsBadKeys(t *testing.T) {
	mainnet := NewEngine(nil)
	require.NoError(t, mainnet.RestoreWithPrivateKeys(testSeedHex, 1))

	testnet := NewEngine(&chaincfg.TestNet3Params)
	_, err := testnet.Address(mainnet.accounts[0].XPub, ReceiveChain, 0)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = mainnet.Address("not-a-key", ReceiveChain, 0)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path   string
		chain  uint32
		index  uint32
		wantOK bool
	}{
		{"M/0/5", 0, 5, true},
		{"m/1/0", 1, 0, true},
		{"1/42", 1, 42, true},
		{"M/0", 0, 0, false},
		{"0/1/2", 0, 0, false},
		{"0'/1", 0, 0, false},
		{"0/-1", 0, 0, false},
		{"0/2147483648", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			chain, index, err := ParsePath(tt.path)
			if !tt.wantOK {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.chain, chain)
			assert.Equal(t, tt.index, index)
		})
	}
}
