package qr

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onePixelPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestParseDataURL(t *testing.T) {
	pix := onePixelPNG(t)

	b, err := ParseDataURL(DataURL(pix))
	require.NoError(t, err)
	assert.Equal(t, pix, b)

	b, err = ParseDataURL("data:text/plain,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(b))

	_, err = ParseDataURL("https://example.com/qr.png")
	assert.ErrorIs(t, err, ErrBadDataURL)

	_, err = ParseDataURL("data:image/png;base64")
	assert.ErrorIs(t, err, ErrBadDataURL)

	_, err = ParseDataURL("data:image/png;base64,!!!")
	assert.ErrorIs(t, err, ErrBadDataURL)
}

func TestHTTPFetcher_DataURL(t *testing.T) {
	pix := onePixelPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tickets/t1/qr", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Response{QRCode: DataURL(pix)})
	}))
	defer srv.Close()

	r, err := NewHTTPFetcher(srv.URL+"/api/", srv.Client()).Fetch(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Image.Bounds().Dx())
	assert.Equal(t, pix, r.Bytes)
}

func TestHTTPFetcher_PlainURL(t *testing.T) {
	pix := onePixelPNG(t)
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/tickets/t2/qr", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Response{QRCode: srv.URL + "/img/t2.png"})
	})
	mux.HandleFunc("/img/t2.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pix)
	})

	r, err := NewHTTPFetcher(srv.URL, srv.Client()).Fetch(context.Background(), "t2")
	require.NoError(t, err)
	assert.Equal(t, pix, r.Bytes)
}

func TestHTTPFetcher_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "empty qr_code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"qr_code": ""}`))
			},
			want: ErrNoQRCode,
		},
		{
			name: "not an image",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"qr_code": "data:text/plain,nope"}`))
			},
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			_, err := NewHTTPFetcher(srv.URL, srv.Client()).Fetch(context.Background(), "t1")
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLocalFetcher(t *testing.T) {
	r, err := LocalFetcher{Size: 128}.Fetch(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 128, r.Image.Bounds().Dx())

	_, err = LocalFetcher{}.Fetch(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNoQRCode)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = LocalFetcher{}.Fetch(ctx, "t1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeneratePNG_Deterministic(t *testing.T) {
	a, err := GeneratePNG(Payload("t1"), 200)
	require.NoError(t, err)
	b, err := GeneratePNG(Payload("t1"), 200)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
