package payload

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/wallet-sync/internal/model"

	log "github.com/sirupsen/logrus"
)

// CreateWallet builds a new HD wallet with one account labelled
// defaultAccountName and installs it as the active payload. The wallet is
// marked new, so the first Persist inserts it.
func (s *Session) CreateWallet(defaultAccountName string) (*model.Payload, error) {
	seedHex, keys, err := s.engine.NewWallet()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivation, err)
	}

	accounts := make([]model.Account, 0, len(keys))
	for _, k := range keys {
		accounts = append(accounts, model.Account{
			Label: defaultAccountName,
			XPub:  k.XPub,
			XPriv: k.XPriv,
		})
	}

	p := &model.Payload{
		GUID:            s.newID(),
		SharedKey:       s.newID(),
		Options:         model.Options{Pbkdf2Iterations: model.DefaultPbkdf2Iterations},
		LegacyAddresses: []model.LegacyAddress{},
		HDWallets: []model.HDWallet{{
			SeedHex:  seedHex,
			Accounts: accounts,
		}},
	}

	s.payload = p
	s.isNew = true
	s.engineLoaded = true

	log.Debugf("created wallet %s with %d account(s)", p.GUID, len(accounts))
	return p, nil
}

// CheckEngineSync reports ErrEngineOutOfSync unless the engine has derived
// exactly as many accounts as the payload persists.
func (s *Session) CheckEngineSync() error {
	if s.payload == nil {
		return ErrNoPayload
	}
	hdw := s.payload.HDWallet()
	if hdw == nil {
		return ErrNotHD
	}
	if got, want := s.engine.AccountCount(), len(hdw.Accounts); got != want {
		return fmt.Errorf("%w: engine has %d, payload has %d", ErrEngineOutOfSync, got, want)
	}
	return nil
}

// AddAccount derives the next account, appends it to the payload and saves.
// If the save fails the account stays in the payload and is returned with an
// error matching ErrPersist; retry Persist rather than deriving again.
// The temporary second password is cleared on return.
func (s *Session) AddAccount(ctx context.Context, label string) (*model.Account, error) {
	defer s.clearTempSecondPassword()

	if s.payload == nil {
		return nil, ErrNoPayload
	}
	hdw := s.payload.HDWallet()
	if hdw == nil {
		return nil, ErrNotHD
	}

	if err := s.prepareEngine(); err != nil {
		return nil, err
	}
	if err := s.CheckEngineSync(); err != nil {
		return nil, err
	}

	keys, err := s.engine.DeriveNextAccount(label)
	if err != nil {
		s.engineLoaded = false
		return nil, fmt.Errorf("%w: %w", ErrDerivation, err)
	}

	xpriv := keys.XPriv
	if s.payload.DoubleEncrypted {
		if xpriv, err = s.doubleEncrypt(keys.XPriv, s.tempSecondPassword); err != nil {
			return nil, err
		}
	}

	hdw.Accounts = append(hdw.Accounts, model.Account{
		Label: label,
		XPub:  keys.XPub,
		XPriv: xpriv,
	})
	acct := hdw.Accounts[len(hdw.Accounts)-1]

	if err := s.Persist(ctx); err != nil {
		return &acct, persistError(err)
	}
	return &acct, nil
}

// prepareEngine loads the payload's private keys into the engine. Double
// encrypted wallets are always rebuilt from the seed decrypted under the
// temporary second password.
func (s *Session) prepareEngine() error {
	hdw := s.payload.HDWallet()

	if s.payload.DoubleEncrypted {
		if !s.ValidateSecondPassword(s.tempSecondPassword) {
			return ErrSecondPasswordMismatch
		}
		seed, err := s.DecryptSeed(s.tempSecondPassword)
		if err != nil {
			return err
		}
		return s.restoreEngine(seed)
	}

	if s.engineLoaded && s.CheckEngineSync() == nil {
		return nil
	}
	return s.restoreEngine(hdw.SeedHex)
}

// restoreEngine rebuilds the engine with private keys for every persisted account
func (s *Session) restoreEngine(seedHex string) error {
	count := len(s.payload.HDWallet().Accounts)
	if err := s.engine.RestoreWithPrivateKeys(seedHex, count); err != nil {
		s.engineLoaded = false
		return fmt.Errorf("%w: %w", ErrDerivation, err)
	}
	s.engineLoaded = true
	return nil
}
