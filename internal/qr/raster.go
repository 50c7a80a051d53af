// Package qr obtains pre-rendered QR rasters for tickets, either from the
// ticket service or by generating them in-process.
package qr

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	ErrNoQRCode   = errors.New("ticket service returned no qr code")
	ErrBadDataURL = errors.New("malformed data url")
)

// Raster is a decoded QR image plus the bytes it was decoded from.
type Raster struct {
	Image image.Image
	Bytes []byte
}

// Decode decodes any image format imaging understands.
func Decode(b []byte) (*Raster, error) {
	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode qr image: %w", err)
	}
	return &Raster{Image: img, Bytes: b}, nil
}

// IsDataURL reports whether s is a data: URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "data:")
}

// ParseDataURL returns the payload of a data: URL. Both base64 and
// percent-encoded payloads are accepted.
func ParseDataURL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !IsDataURL(s) {
		return nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return nil, ErrBadDataURL
	}
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// some producers strip padding
			if b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
			}
		}
		return b, nil
	}
	p, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	return []byte(p), nil
}

// DataURL wraps PNG bytes in a base64 data: URL.
func DataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
