package payload

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/AlexZinkM/wallet-sync/internal/crypto"
	"github.com/AlexZinkM/wallet-sync/internal/hd"

	"github.com/stretchr/testify/require"
)

const (
	testServerURL = "https://wallet.test/wallet"
	testPassword  = "correctPassword"
)

// fakeTransport records every form it is given
type fakeTransport struct {
	calls   []url.Values
	respond func(form url.Values) (string, error)
}

func (f *fakeTransport) Post(_ context.Context, u, body string) (string, error) {
	if u != testServerURL {
		return "", errors.New("unexpected url " + u)
	}
	form, err := url.ParseQuery(body)
	if err != nil {
		return "", err
	}
	f.calls = append(f.calls, form)
	if f.respond == nil {
		return syncedAck, nil
	}
	return f.respond(form)
}

// memoryServer is a wallet store keeping the last saved envelope
type memoryServer struct {
	envelope string
	checksum string
}

func (m *memoryServer) respond(form url.Values) (string, error) {
	if form.Get("method") == "wallet.aes.json" {
		resp, err := json.Marshal(map[string]string{
			"payload_checksum": m.checksum,
			"payload":          m.envelope,
		})
		return string(resp), err
	}
	m.envelope = form.Get("payload")
	m.checksum = form.Get("checksum")
	return syncedAck, nil
}

// recordingCipher remembers the work factors Decrypt was asked for
type recordingCipher struct {
	crypto.Cipher
	decrypts []int
}

func (c *recordingCipher) Decrypt(ciphertext string, password []byte, iterations int) ([]byte, bool) {
	c.decrypts = append(c.decrypts, iterations)
	return c.Cipher.Decrypt(ciphertext, password, iterations)
}

func newTestSession(t *testing.T, tr *fakeTransport, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithServerURL(testServerURL), WithAPICode("test-api")}, opts...)
	return NewSession(tr, hd.NewEngine(nil), opts...)
}

// newSyncedWallet creates a wallet and saves it once
func newSyncedWallet(t *testing.T, tr *fakeTransport) *Session {
	t.Helper()
	s := newTestSession(t, tr)
	_, err := s.CreateWallet("Spending")
	require.NoError(t, err)
	s.SetTempPassword([]byte(testPassword))
	require.NoError(t, s.Persist(context.Background()))
	return s
}

// serverResponse builds a wallet.aes.json response for plaintext
func serverResponse(t *testing.T, plaintext string, iterations int, fields map[string]any) string {
	t.Helper()
	ct, err := crypto.Encrypt([]byte(plaintext), []byte(testPassword), iterations)
	require.NoError(t, err)

	resp := map[string]any{"payload": ct}
	for k, v := range fields {
		resp[k] = v
	}
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(b)
}
