package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/text/language"

	"github.com/youruser/ticketrender/assets"
	"github.com/youruser/ticketrender/internal/qr"
	"github.com/youruser/ticketrender/internal/ticket"
	"github.com/youruser/ticketrender/internal/util"
)

// LogoSource loads the brand logo drawn in the header.
type LogoSource interface {
	Name() string
	Load(ctx context.Context) (image.Image, error)
}

func decodeLogo(b []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// EmbeddedLogo is the logo bundled into the binary.
type EmbeddedLogo struct{}

func (EmbeddedLogo) Name() string { return "embedded" }

func (EmbeddedLogo) Load(ctx context.Context) (image.Image, error) {
	return decodeLogo(assets.Logo)
}

// FileLogo reads the logo from disk on every render.
type FileLogo string

func (p FileLogo) Name() string { return "file:" + string(p) }

func (p FileLogo) Load(ctx context.Context) (image.Image, error) {
	b, err := os.ReadFile(string(p))
	if err != nil {
		return nil, err
	}
	return decodeLogo(b)
}

// URLLogo downloads the logo on every render.
type URLLogo struct {
	URL    string
	Client *http.Client
}

func (u URLLogo) Name() string { return "url:" + u.URL }

func (u URLLogo) Load(ctx context.Context) (image.Image, error) {
	b, err := util.GetBytes(ctx, u.Client, u.URL)
	if err != nil {
		return nil, err
	}
	return decodeLogo(b)
}

// StaticLogo serves an already decoded image.
type StaticLogo struct {
	Image image.Image
}

func (StaticLogo) Name() string { return "static" }

func (s StaticLogo) Load(ctx context.Context) (image.Image, error) {
	if s.Image == nil {
		return nil, fmt.Errorf("no image")
	}
	return s.Image, nil
}

// LogoFrom picks the logo source: a file path wins over a URL, and with
// neither the embedded logo is used.
func LogoFrom(path, url string, client *http.Client) LogoSource {
	switch {
	case path != "":
		return FileLogo(path)
	case url != "":
		return URLLogo{URL: url, Client: client}
	}
	return EmbeddedLogo{}
}

// Inputs is everything Paint needs, fully resolved. Building it is the only
// step of a render that waits on I/O.
type Inputs struct {
	Record   *ticket.Record
	Template Template
	Logo     image.Image

	// QR is nil when the ticket is not delivered as a QR code or when
	// fetching it failed; QRErr holds the failure in the latter case.
	QR    *qr.Raster
	QRErr error

	Brand  string
	Locale language.Tag
}
