package payload

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexZinkM/wallet-sync/internal/common"
	"github.com/AlexZinkM/wallet-sync/internal/model"

	log "github.com/sirupsen/logrus"
)

// syncedAck is the acknowledgement text of a successful save
const syncedAck = "Wallet successfully synced"

// Fetch downloads, decrypts and installs the wallet identified by guid and sharedKey.
// password must be []byte for security (caller should zero it after use)
func (s *Session) Fetch(ctx context.Context, guid, sharedKey string, password []byte) (*model.Payload, error) {
	var form common.Form
	form.Add("method", "wallet.aes.json")
	form.Add("guid", guid)
	form.Add("sharedKey", sharedKey)
	form.Add("format", "json")
	form.Add("api_code", s.apiCode)

	response, err := s.transport.Post(ctx, s.serverURL, form.Encode())
	if err != nil {
		return nil, s.fail(fmt.Errorf("%w: %w", ErrTransport, err))
	}

	resp, err := ParseServerResponse([]byte(response))
	if err != nil {
		return nil, s.fail(err)
	}

	// Negotiation starts over for every loaded payload
	iterations := model.DefaultPbkdf2Iterations
	if resp.Iterations > 0 {
		iterations = resp.Iterations
	}
	version := model.VersionLegacy
	if resp.Version > 0 {
		version = resp.Version
	}

	plaintext, used, err := OpenEnvelope(s.cipher, resp.Ciphertext, password, iterations)
	if err != nil {
		return nil, s.fail(err)
	}
	defer clear(plaintext)
	if used != iterations {
		log.Warnf("wallet %s opened with legacy pbkdf2 iterations %d", guid, used)
	}

	p, err := ParsePayload(plaintext)
	if err != nil {
		return nil, s.fail(err)
	}

	// Wallets without their own double encryption work factor use the envelope's
	if p.DoubleEncryptionIterations() == 0 {
		p.SetDoubleEncryptionIterations(iterations)
	}

	if resp.Checksum != "" {
		s.checksum = resp.Checksum
	}
	s.iterations = iterations
	s.version = version
	s.isNew = false
	s.payload = p
	s.lastErr = ""

	if s.engine != nil {
		s.engine.Reset()
	}
	s.engineLoaded = false

	log.Debugf("fetched wallet %s: version %s, %d iterations", guid, version, iterations)
	return p, nil
}

// Persist saves the active payload. It is a no-op when the payload is
// unchanged since the last acknowledged save. The checksum advances before
// the request is sent and is kept even if the save fails.
func (s *Session) Persist(ctx context.Context) error {
	if s.payload == nil {
		return s.fail(ErrNoPayload)
	}

	serialized, err := serialize(s.payload)
	if err != nil {
		return s.fail(err)
	}
	if serialized == s.cached {
		log.Debugf("wallet %s unchanged, skipping save", s.payload.GUID)
		return nil
	}

	if len(s.tempPassword) == 0 {
		return s.fail(ErrNoPassword)
	}

	version := model.VersionLegacy
	if s.payload.IsUpgraded() {
		version = model.VersionUpgraded
	}

	envelope, err := SealEnvelope(s.cipher, []byte(serialized), s.tempPassword, s.iterations, version)
	if err != nil {
		return s.fail(err)
	}

	oldChecksum := s.checksum
	s.checksum = s.cipher.DigestHex(envelope)
	if s.checksum == "" {
		return s.fail(ErrDigest)
	}
	s.version = version

	method := "update"
	if s.isNew {
		method = "insert"
	}

	var form common.Form
	form.Add("guid", s.payload.GUID)
	form.Add("sharedKey", s.payload.SharedKey)
	form.Add("payload", string(envelope))
	form.Add("method", method)
	form.Add("length", strconv.Itoa(len(envelope)))
	form.Add("checksum", s.checksum)
	if s.syncPubKeys {
		form.Add("active", strings.Join(s.payload.ActiveAddresses(), "|"))
	}
	if s.email != "" {
		form.Add("email", s.email)
	}
	form.Add("device", s.device)
	if oldChecksum != "" {
		form.Add("old_checksum", oldChecksum)
	}
	form.Add("api_code", s.apiCode)

	response, err := s.transport.Post(ctx, s.serverURL, form.Encode())
	if err != nil {
		return s.fail(fmt.Errorf("%w: %w: %w", ErrPersist, ErrTransport, err))
	}
	if !strings.Contains(response, syncedAck) {
		log.Warnf("wallet %s save rejected: %s", s.payload.GUID, strings.TrimSpace(response))
		return s.fail(fmt.Errorf("%w: %s", ErrPersist, strings.TrimSpace(response)))
	}

	s.isNew = false
	s.cached = serialized
	s.lastErr = ""
	log.Debugf("wallet %s saved (%s)", s.payload.GUID, method)
	return nil
}

// persistError wraps a failed save so it always matches ErrPersist
func persistError(err error) error {
	if errors.Is(err, ErrPersist) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersist, err)
}
