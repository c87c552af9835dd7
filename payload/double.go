package payload

import (
	"fmt"

	"github.com/AlexZinkM/wallet-sync/internal/common"
	"github.com/AlexZinkM/wallet-sync/internal/crypto"
)

// doubleIterations is the second password work factor
func (s *Session) doubleIterations() int {
	if n := s.payload.DoubleEncryptionIterations(); n > 0 {
		return n
	}
	return s.iterations
}

// ValidateSecondPassword checks password against the stored second password hash
func (s *Session) ValidateSecondPassword(password []byte) bool {
	if s.payload == nil || !s.payload.DoubleEncrypted {
		return false
	}
	return crypto.ValidateSecondPassword(
		s.payload.DoublePasswordHash,
		s.payload.SharedKey,
		password,
		s.doubleIterations(),
	)
}

// DecryptSeed returns the plaintext seed hex of a double encrypted wallet
func (s *Session) DecryptSeed(password []byte) (string, error) {
	if s.payload == nil {
		return "", ErrNoPayload
	}
	hdw := s.payload.HDWallet()
	if hdw == nil {
		return "", ErrNotHD
	}
	if !s.payload.DoubleEncrypted {
		return "", ErrNotDoubleEncrypted
	}

	seed, ok := s.doubleDecrypt(hdw.SeedHex, password)
	if !ok {
		return "", fmt.Errorf("%w: seed did not decrypt", ErrSecondPasswordMismatch)
	}
	return seed, nil
}

// SetSecondPassword validates password. For HD wallets the engine is rebuilt
// with private keys for every persisted account, otherwise the password is
// kept as the temporary second password. Nothing changes if validation fails.
func (s *Session) SetSecondPassword(password []byte, isHD bool) error {
	if !s.ValidateSecondPassword(password) {
		return ErrSecondPasswordMismatch
	}

	if !isHD {
		s.SetTempSecondPassword(password)
		return nil
	}

	seed, err := s.DecryptSeed(password)
	if err != nil {
		return err
	}
	if err := s.restoreEngine(seed); err != nil {
		return err
	}
	return nil
}

// MnemonicForDoubleEncryptedWallet recovers the mnemonic using the temporary
// second password. The engine is left holding a single account.
func (s *Session) MnemonicForDoubleEncryptedWallet() ([]string, error) {
	if !s.HasTempSecondPassword() {
		return nil, ErrNoSecondPassword
	}

	seed, err := s.DecryptSeed(s.tempSecondPassword)
	if err != nil {
		return nil, err
	}

	if err := s.engine.RestoreWithPrivateKeys(seed, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivation, err)
	}
	s.engineLoaded = false

	phrase, err := s.engine.Mnemonic()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivation, err)
	}

	words := common.SplitWords(phrase)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty mnemonic", ErrDerivation)
	}
	return words, nil
}

// EnableDoubleEncryption encrypts the seed, every account xpriv and every
// legacy private key under password and records its hash. The change is
// local until the next Persist.
func (s *Session) EnableDoubleEncryption(password []byte) error {
	if s.payload == nil {
		return ErrNoPayload
	}
	if s.payload.DoubleEncrypted {
		return ErrAlreadyDoubleEncrypted
	}
	if len(password) == 0 {
		return ErrNoSecondPassword
	}

	if s.payload.DoubleEncryptionIterations() == 0 {
		s.payload.SetDoubleEncryptionIterations(s.iterations)
	}

	// Encrypt into copies so a failure leaves the payload untouched
	var seed string
	var xprivs []string
	hdw := s.payload.HDWallet()
	if hdw != nil {
		var err error
		if seed, err = s.doubleEncrypt(hdw.SeedHex, password); err != nil {
			return err
		}
		xprivs = make([]string, len(hdw.Accounts))
		for i, acct := range hdw.Accounts {
			if acct.XPriv == "" {
				continue
			}
			if xprivs[i], err = s.doubleEncrypt(acct.XPriv, password); err != nil {
				return err
			}
		}
	}

	privs := make([]string, len(s.payload.LegacyAddresses))
	for i, addr := range s.payload.LegacyAddresses {
		if addr.Priv == "" {
			continue
		}
		var err error
		if privs[i], err = s.doubleEncrypt(addr.Priv, password); err != nil {
			return err
		}
	}

	if hdw != nil {
		hdw.SeedHex = seed
		for i := range hdw.Accounts {
			hdw.Accounts[i].XPriv = xprivs[i]
		}
	}
	for i := range s.payload.LegacyAddresses {
		s.payload.LegacyAddresses[i].Priv = privs[i]
	}

	s.payload.DoublePasswordHash = crypto.HashSecondPassword(s.payload.SharedKey, password, s.doubleIterations())
	s.payload.DoubleEncrypted = true
	return nil
}

func (s *Session) doubleEncrypt(secret string, password []byte) (string, error) {
	material := s.doubleKeyMaterial(password)
	defer clear(material)

	ct, err := s.cipher.Encrypt([]byte(secret), material, s.doubleIterations())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	return ct, nil
}

func (s *Session) doubleDecrypt(ciphertext string, password []byte) (string, bool) {
	material := s.doubleKeyMaterial(password)
	defer clear(material)

	plaintext, ok := s.cipher.Decrypt(ciphertext, material, s.doubleIterations())
	if !ok {
		return "", false
	}
	return string(plaintext), true
}

// doubleKeyMaterial is sharedKey followed by the second password
func (s *Session) doubleKeyMaterial(password []byte) []byte {
	material := make([]byte, 0, len(s.payload.SharedKey)+len(password))
	material = append(material, s.payload.SharedKey...)
	return append(material, password...)
}
