package payload

import (
	"fmt"

	"github.com/AlexZinkM/wallet-sync/internal/hd"
	"github.com/AlexZinkM/wallet-sync/internal/model"
)

// ChangeAddress returns the address at the account's change index. It is
// derived from the xpub, so double encrypted wallets need no second password.
func (s *Session) ChangeAddress(accountIndex int) (string, error) {
	acct, err := s.account(accountIndex)
	if err != nil {
		return "", err
	}
	return s.address(acct.XPub, hd.ChangeChain, acct.ChangeAddressIndex)
}

// ReceiveAddress returns the address at the account's receive index
func (s *Session) ReceiveAddress(accountIndex int) (string, error) {
	acct, err := s.account(accountIndex)
	if err != nil {
		return "", err
	}
	return s.address(acct.XPub, hd.ReceiveChain, acct.ReceiveAddressIndex)
}

// PrivateKey returns the WIF private key at path ("M/chain/index") below the
// account. Double encrypted wallets use the temporary second password.
func (s *Session) PrivateKey(accountIndex int, path string) (string, error) {
	acct, err := s.account(accountIndex)
	if err != nil {
		return "", err
	}
	chain, index, err := hd.ParsePath(path)
	if err != nil {
		return "", err
	}
	if acct.XPriv == "" {
		return "", ErrWatchOnly
	}

	xpriv := acct.XPriv
	if s.payload.DoubleEncrypted {
		if !s.HasTempSecondPassword() {
			return "", ErrNoSecondPassword
		}
		plain, ok := s.doubleDecrypt(acct.XPriv, s.tempSecondPassword)
		if !ok {
			return "", fmt.Errorf("%w: xpriv did not decrypt", ErrSecondPasswordMismatch)
		}
		xpriv = plain
	}

	wif, err := s.engine.PrivateKey(xpriv, chain, index)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDerivation, err)
	}
	return wif, nil
}

func (s *Session) account(index int) (*model.Account, error) {
	if s.payload == nil {
		return nil, ErrNoPayload
	}
	hdw := s.payload.HDWallet()
	if hdw == nil {
		return nil, ErrNotHD
	}
	if index < 0 || index >= len(hdw.Accounts) {
		return nil, fmt.Errorf("%w %d", ErrNoAccount, index)
	}
	return &hdw.Accounts[index], nil
}

func (s *Session) address(xpub string, chain uint32, index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: negative address index %d", ErrDerivation, index)
	}
	addr, err := s.engine.Address(xpub, chain, uint32(index))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDerivation, err)
	}
	return addr, nil
}
