// Package payload keeps an encrypted HD wallet payload in sync with the
// remote wallet store.
//
// A Session is the state of one logged-in wallet: the active payload, the
// serialized form last acknowledged by the server, the checksum of the last
// envelope sent, the negotiated PBKDF2 work factor and the temporary
// passwords. Sessions do no locking; one caller drives a session at a time.
package payload

import (
	"context"

	"github.com/AlexZinkM/wallet-sync/internal/crypto"
	"github.com/AlexZinkM/wallet-sync/internal/model"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	// LegacyPbkdf2Iterations is the work factor of pre-versioning wallets
	LegacyPbkdf2Iterations = 10

	DefaultDevice = "android"
)

// Transport posts a form body to the wallet server and returns the response text
type Transport interface {
	Post(ctx context.Context, url, body string) (string, error)
}

// Cipher is the password based symmetric cipher and digest of the wallet format.
// Decrypt reports ok=false instead of failing when the key does not fit.
type Cipher interface {
	Encrypt(plaintext, password []byte, iterations int) (string, error)
	Decrypt(ciphertext string, password []byte, iterations int) ([]byte, bool)
	DigestHex(data []byte) string
}

// Engine is the HD derivation engine holding the private key state of the wallet
type Engine interface {
	NewWallet() (seedHex string, accounts []model.AccountKeys, err error)
	DeriveNextAccount(label string) (model.AccountKeys, error)
	RestoreWithPrivateKeys(seedHex string, accountCount int) error
	AccountCount() int
	Mnemonic() (string, error)
	Reset()
	Address(accountKey string, chain, index uint32) (string, error)
	PrivateKey(xpriv string, chain, index uint32) (string, error)
}

// Session holds the synchronization state of one wallet
type Session struct {
	transport Transport
	cipher    Cipher
	engine    Engine
	serverURL string
	apiCode   string
	device    string
	newID     func() string

	payload     *model.Payload
	cached      string // serialized payload last acknowledged by the server
	checksum    string // digest of the last envelope sent
	iterations  int
	version     model.FormatVersion
	isNew       bool
	syncPubKeys bool
	email       string
	lastErr     string

	tempPassword       []byte
	tempSecondPassword []byte

	// engineLoaded is set once the engine holds this payload's keys
	engineLoaded bool
}

// Option configures a Session
type Option func(*Session)

// WithServerURL sets the wallet endpoint
func WithServerURL(url string) Option {
	return func(s *Session) {
		s.serverURL = url
	}
}

// WithAPICode sets the api_code parameter sent with each request
func WithAPICode(code string) Option {
	return func(s *Session) {
		s.apiCode = code
	}
}

// WithDevice overrides the device tag sent on save
func WithDevice(device string) Option {
	return func(s *Session) {
		if device != "" {
			s.device = device
		}
	}
}

// WithCipher replaces the wallet cipher
func WithCipher(c Cipher) Option {
	return func(s *Session) {
		s.cipher = c
	}
}

// WithIDGenerator replaces the guid/sharedKey generator
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		s.newID = fn
	}
}

// NewSession creates an empty session
func NewSession(transport Transport, engine Engine, opts ...Option) *Session {
	s := &Session{
		transport: transport,
		engine:    engine,
		cipher:    crypto.NewCipher(),
		device:    DefaultDevice,
		newID:     uuid.NewString,
	}
	s.resetState()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) resetState() {
	s.payload = nil
	s.cached = ""
	s.checksum = ""
	s.iterations = model.DefaultPbkdf2Iterations
	s.version = model.VersionLegacy
	s.isNew = false
	s.syncPubKeys = true
	s.email = ""
	s.lastErr = ""
	s.engineLoaded = false
}

// Wipe discards the wallet and zeroes every secret the session holds
func (s *Session) Wipe() {
	clear(s.tempPassword)
	s.tempPassword = nil
	s.clearTempSecondPassword()
	if s.engine != nil {
		s.engine.Reset()
	}
	s.resetState()
	log.Debug("wallet session wiped")
}

// Payload returns the active payload, nil if none
func (s *Session) Payload() *model.Payload {
	return s.payload
}

// SetPayload installs p as the active payload without touching the server
func (s *Session) SetPayload(p *model.Payload) {
	s.payload = p
	s.engineLoaded = false
}

// Cache marks the current payload as synced with the server
func (s *Session) Cache() error {
	if s.payload == nil {
		return ErrNoPayload
	}
	serialized, err := serialize(s.payload)
	if err != nil {
		return err
	}
	s.cached = serialized
	return nil
}

// SetTempPassword stores the validated main password. The cached payload is
// dropped so the next persist re-encrypts under the new password.
func (s *Session) SetTempPassword(password []byte) {
	clear(s.tempPassword)
	s.tempPassword = append([]byte(nil), password...)
	s.cached = ""
}

// HasTempPassword reports whether a main password is set
func (s *Session) HasTempPassword() bool {
	return len(s.tempPassword) > 0
}

// SetTempSecondPassword stores the second password until the next AddAccount
func (s *Session) SetTempSecondPassword(password []byte) {
	s.clearTempSecondPassword()
	s.tempSecondPassword = append([]byte(nil), password...)
}

// HasTempSecondPassword reports whether a second password is set
func (s *Session) HasTempSecondPassword() bool {
	return len(s.tempSecondPassword) > 0
}

func (s *Session) clearTempSecondPassword() {
	clear(s.tempSecondPassword)
	s.tempSecondPassword = nil
}

func (s *Session) Checksum() string {
	return s.checksum
}

func (s *Session) SetChecksum(checksum string) {
	s.checksum = checksum
}

func (s *Session) IsNew() bool {
	return s.isNew
}

func (s *Session) SetNew(isNew bool) {
	s.isNew = isNew
}

// Iterations returns the outer envelope work factor used by the next save
func (s *Session) Iterations() int {
	return s.iterations
}

// Version returns the envelope format version last negotiated or sent
func (s *Session) Version() model.FormatVersion {
	return s.version
}

func (s *Session) SyncPubKeys() bool {
	return s.syncPubKeys
}

// SetSyncPubKeys controls whether saves carry the active address hint
func (s *Session) SetSyncPubKeys(sync bool) {
	s.syncPubKeys = sync
}

func (s *Session) Email() string {
	return s.email
}

func (s *Session) SetEmail(email string) {
	s.email = email
}

// LastError returns the message of the last failed Fetch or Persist
func (s *Session) LastError() string {
	return s.lastErr
}

// Accounts returns the HD accounts of the active payload
func (s *Session) Accounts() []model.Account {
	hdw := s.payload.HDWallet()
	if hdw == nil {
		return nil
	}
	return hdw.Accounts
}

// XPub returns the extended public key of the account at index
func (s *Session) XPub(index int) (string, bool) {
	accounts := s.Accounts()
	if index < 0 || index >= len(accounts) {
		return "", false
	}
	return accounts[index].XPub, true
}

func (s *Session) fail(err error) error {
	s.lastErr = err.Error()
	return err
}
