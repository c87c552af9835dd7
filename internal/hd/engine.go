// Package hd derives BIP44 accounts from a BIP39 seed.
//
// The engine owns the private derivation state of one wallet. It is either
// empty (nothing loaded), or holds the master key restored from a seed, in
// which case AccountCount is the number of accounts derived so far.
package hd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexZinkM/wallet-sync/internal/model"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

const (
	entropyBits = 128 // 12 words
	purpose     = 44
	coinType    = 0

	// Account branches
	ReceiveChain uint32 = 0
	ChangeChain  uint32 = 1
)

var (
	// ErrNoPrivateKeys is returned when deriving without a restored seed
	ErrNoPrivateKeys = errors.New("hd engine has no private keys loaded")
	// ErrInvalidSeed is returned for seed hex that is not valid BIP39 entropy
	ErrInvalidSeed = errors.New("invalid seed hex")
	// ErrInvalidKey is returned for extended keys that do not parse or belong to another network
	ErrInvalidKey = errors.New("invalid extended key")
	// ErrInvalidPath is returned for key paths other than chain/index
	ErrInvalidPath = errors.New("invalid key path")
)

// Engine derives accounts m/44'/0'/n'
type Engine struct {
	params   *chaincfg.Params
	entropy  []byte
	master   *hdkeychain.ExtendedKey
	accounts []model.AccountKeys
}

// NewEngine creates an empty engine for the given network
func NewEngine(params *chaincfg.Params) *Engine {
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	return &Engine{params: params}
}

// ParamsForNetwork maps a network name to chain parameters
func ParamsForNetwork(network string) (*chaincfg.Params, error) {
	switch network {
	case "", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

// NewWallet generates fresh entropy and derives the first account.
// Returns the seed hex (BIP39 entropy) and the account keys.
func (e *Engine) NewWallet() (string, []model.AccountKeys, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate entropy: %w", err)
	}

	if err := e.load(entropy); err != nil {
		return "", nil, err
	}

	if _, err := e.DeriveNextAccount(""); err != nil {
		return "", nil, err
	}

	accounts := make([]model.AccountKeys, len(e.accounts))
	copy(accounts, e.accounts)
	return hex.EncodeToString(entropy), accounts, nil
}

// RestoreWithPrivateKeys rebuilds the engine from seed hex and derives
// exactly accountCount accounts, replacing any previous state.
func (e *Engine) RestoreWithPrivateKeys(seedHex string, accountCount int) error {
	if accountCount < 0 {
		return fmt.Errorf("negative account count %d", accountCount)
	}

	entropy, err := hex.DecodeString(seedHex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	if err := e.load(entropy); err != nil {
		return err
	}

	for i := 0; i < accountCount; i++ {
		if _, err := e.DeriveNextAccount(""); err != nil {
			return err
		}
	}
	return nil
}

// DeriveNextAccount derives the account at index AccountCount().
// Labels live in the payload, the engine only tracks the index.
func (e *Engine) DeriveNextAccount(_ string) (model.AccountKeys, error) {
	if e.master == nil {
		return model.AccountKeys{}, ErrNoPrivateKeys
	}

	index := uint32(len(e.accounts))
	acct, err := deriveAccount(e.master, index)
	if err != nil {
		return model.AccountKeys{}, fmt.Errorf("failed to derive account %d: %w", index, err)
	}

	pub, err := acct.Neuter()
	if err != nil {
		return model.AccountKeys{}, fmt.Errorf("failed to neuter account %d: %w", index, err)
	}

	keys := model.AccountKeys{
		XPub:  pub.String(),
		XPriv: acct.String(),
	}
	acct.Zero()

	e.accounts = append(e.accounts, keys)
	return keys, nil
}

// AccountCount returns the number of accounts the engine has derived
func (e *Engine) AccountCount() int {
	return len(e.accounts)
}

// Mnemonic returns the phrase for the loaded seed
func (e *Engine) Mnemonic() (string, error) {
	if e.entropy == nil {
		return "", ErrNoPrivateKeys
	}
	return bip39.NewMnemonic(e.entropy)
}

// Reset forgets all key material
func (e *Engine) Reset() {
	clear(e.entropy)
	e.entropy = nil
	if e.master != nil {
		e.master.Zero()
		e.master = nil
	}
	e.accounts = nil
}

func (e *Engine) load(entropy []byte) error {
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	seed := bip39.NewSeed(mnemonic, "")
	defer clear(seed)

	master, err := hdkeychain.NewMaster(seed, e.params)
	if err != nil {
		return fmt.Errorf("failed to create master key: %w", err)
	}

	e.Reset()
	e.entropy = append([]byte(nil), entropy...)
	e.master = master
	return nil
}

// deriveAccount walks m/44'/0'/index'
func deriveAccount(master *hdkeychain.ExtendedKey, index uint32) (*hdkeychain.ExtendedKey, error) {
	key := master
	for _, child := range []uint32{purpose, coinType, index} {
		next, err := key.Derive(hdkeychain.HardenedKeyStart + child)
		if err != nil {
			return nil, err
		}
		key = next
	}
	return key, nil
}

// Address returns the P2PKH address at chain/index below an account xpub or xprv
func (e *Engine) Address(accountKey string, chain, index uint32) (string, error) {
	child, err := e.deriveChild(accountKey, chain, index)
	if err != nil {
		return "", err
	}
	addr, err := child.Address(e.params)
	if err != nil {
		return "", fmt.Errorf("failed to build address %d/%d: %w", chain, index, err)
	}
	return addr.EncodeAddress(), nil
}

// PrivateKey returns the compressed WIF of the key at chain/index below an account xprv
func (e *Engine) PrivateKey(xpriv string, chain, index uint32) (string, error) {
	child, err := e.deriveChild(xpriv, chain, index)
	if err != nil {
		return "", err
	}
	defer child.Zero()
	if !child.IsPrivate() {
		return "", ErrNoPrivateKeys
	}

	priv, err := child.ECPrivKey()
	if err != nil {
		return "", fmt.Errorf("failed to get private key %d/%d: %w", chain, index, err)
	}
	wif, err := btcutil.NewWIF(priv, e.params, true)
	if err != nil {
		return "", fmt.Errorf("failed to encode private key %d/%d: %w", chain, index, err)
	}
	return wif.String(), nil
}

// ParsePath reads an account relative path such as "M/1/4" or "0/7"
func ParsePath(path string) (chain, index uint32, err error) {
	parts := strings.Split(path, "/")
	if len(parts) == 3 && (parts[0] == "M" || parts[0] == "m") {
		parts = parts[1:]
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	values := make([]uint32, 2)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n >= hdkeychain.HardenedKeyStart {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		values[i] = uint32(n)
	}
	return values[0], values[1], nil
}

// deriveChild walks chain/index below an account extended key (non-hardened)
func (e *Engine) deriveChild(accountKey string, chain, index uint32) (*hdkeychain.ExtendedKey, error) {
	key, err := hdkeychain.NewKeyFromString(accountKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if !key.IsForNet(e.params) {
		return nil, fmt.Errorf("%w: not for %s", ErrInvalidKey, e.params.Name)
	}
	defer key.Zero()

	branch, err := key.Derive(chain)
	if err != nil {
		return nil, fmt.Errorf("failed to derive chain %d: %w", chain, err)
	}
	defer branch.Zero()

	child, err := branch.Derive(index)
	if err != nil {
		return nil, fmt.Errorf("failed to derive index %d/%d: %w", chain, index, err)
	}
	return child, nil
}
