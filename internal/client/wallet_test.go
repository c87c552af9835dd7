package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSendsForm(t *testing.T) {
	var gotBody, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte("Wallet successfully synced"))
	}))
	defer srv.Close()

	c := NewWalletClient(time.Second)
	resp, err := c.Post(context.Background(), srv.URL, "guid=g1&method=update")
	require.NoError(t, err)

	assert.Equal(t, "Wallet successfully synced", resp)
	assert.Equal(t, "guid=g1&method=update", gotBody)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
}

func TestPostNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Checksum did not match", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewWalletClient(0).Post(context.Background(), srv.URL, "")
	require.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "Checksum did not match")
}

func TestPostUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewWalletClient(time.Second).Post(context.Background(), url, "")
	require.ErrorIs(t, err, ErrTransport)
}
