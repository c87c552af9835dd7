package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 8 << 20 // wallet payloads stay well under this
)

// ErrTransport marks every failure to complete a round trip with the wallet server
var ErrTransport = errors.New("wallet server transport failure")

// WalletClient posts form bodies to the wallet server
type WalletClient struct {
	client *http.Client
}

// NewWalletClient creates a new wallet server client. A zero timeout uses the default.
func NewWalletClient(timeout time.Duration) *WalletClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &WalletClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Post sends an application/x-www-form-urlencoded body and returns the response text.
// Non-2xx responses are transport failures; the body text is kept in the error.
func (c *WalletClient) Post(ctx context.Context, url, body string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return string(data), nil
}
