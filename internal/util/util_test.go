package util

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	b, err := GetBytes(context.Background(), nil, srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), b)

	_, err = GetBytes(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status 404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = GetBytes(ctx, srv.Client(), srv.URL+"/ok")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetBytes_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := MaxBodyBytes
		if r.URL.Path == "/over" {
			n++
		}
		_, _ = w.Write(bytes.Repeat([]byte{'x'}, n))
	}))
	defer srv.Close()

	b, err := GetBytes(context.Background(), srv.Client(), srv.URL+"/exact")
	require.NoError(t, err)
	assert.Len(t, b, MaxBodyBytes)

	_, err = GetBytes(context.Background(), srv.Client(), srv.URL+"/over")
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	p, err := WriteFile(dir, "ticket-1.png", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ticket-1.png"), p)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
}
