package payload

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/AlexZinkM/wallet-sync/internal/model"
)

// ServerResponse is the decoded wallet.aes.json response. Iterations and
// Version are zero when the server omitted them.
type ServerResponse struct {
	Checksum   string
	Ciphertext string
	Iterations int
	Version    model.FormatVersion
}

// ParseServerResponse decodes a fetch response. The envelope keys may sit on
// the outer object or inside "payload", given either as an object or as a
// JSON document in a string; the nested form wins when it carries its own
// "payload" key.
func ParseServerResponse(raw []byte) (*ServerResponse, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	resp := &ServerResponse{}
	if v, ok := outer["payload_checksum"]; ok {
		resp.Checksum = rawText(v)
	}

	payloadRaw, ok := outer["payload"]
	if !ok {
		return nil, fmt.Errorf("%w: response has no payload", ErrMalformedEnvelope)
	}

	fields := outer
	if nested := nestedEnvelope(payloadRaw); nested != nil {
		fields = nested
	}

	if err := json.Unmarshal(fields["payload"], &resp.Ciphertext); err != nil {
		return nil, fmt.Errorf("%w: payload is not a string", ErrMalformedEnvelope)
	}
	if resp.Ciphertext == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedEnvelope)
	}

	if v, ok := fields["pbkdf2_iterations"]; ok {
		n, err := strconv.Atoi(rawText(v))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: invalid pbkdf2_iterations %s", ErrMalformedEnvelope, v)
		}
		resp.Iterations = n
	}

	if v, ok := fields["version"]; ok {
		f, err := strconv.ParseFloat(rawText(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid version %s", ErrMalformedEnvelope, v)
		}
		resp.Version = model.FormatVersion(f)
	}

	return resp, nil
}

// nestedEnvelope returns the inner object of payload if it has its own payload key
func nestedEnvelope(payloadRaw json.RawMessage) map[string]json.RawMessage {
	doc := []byte(payloadRaw)

	var text string
	if err := json.Unmarshal(payloadRaw, &text); err == nil {
		doc = []byte(text)
	}

	var inner map[string]json.RawMessage
	if err := json.Unmarshal(doc, &inner); err != nil {
		return nil
	}
	if _, ok := inner["payload"]; !ok {
		return nil
	}
	return inner
}

// rawText returns a JSON string's contents, or the literal itself for other values
func rawText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// OpenEnvelope decrypts ciphertext with iterations, falling back once to the
// legacy work factor. It returns the plaintext and the work factor that opened it.
func OpenEnvelope(c Cipher, ciphertext string, password []byte, iterations int) ([]byte, int, error) {
	if plaintext, ok := c.Decrypt(ciphertext, password, iterations); ok {
		return plaintext, iterations, nil
	}
	if iterations != LegacyPbkdf2Iterations {
		if plaintext, ok := c.Decrypt(ciphertext, password, LegacyPbkdf2Iterations); ok {
			return plaintext, LegacyPbkdf2Iterations, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: empty after decrypt", ErrDecryption)
}

// SealEnvelope encrypts plaintext and returns the envelope JSON
func SealEnvelope(c Cipher, plaintext, password []byte, iterations int, version model.FormatVersion) ([]byte, error) {
	ciphertext, err := c.Encrypt(plaintext, password, iterations)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	envelope, err := json.Marshal(model.Envelope{
		Version:          version,
		Pbkdf2Iterations: iterations,
		Payload:          ciphertext,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	return envelope, nil
}

// ParsePayload decodes decrypted wallet.json
func ParsePayload(plaintext []byte) (*model.Payload, error) {
	var p model.Payload
	if err := json.Unmarshal(plaintext, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONParse, err)
	}
	if p.GUID == "" || p.SharedKey == "" {
		return nil, fmt.Errorf("%w: missing guid or sharedKey", ErrJSONParse)
	}
	return &p, nil
}

func serialize(p *model.Payload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJSONParse, err)
	}
	return string(b), nil
}
