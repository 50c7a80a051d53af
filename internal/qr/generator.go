package qr

import (
	"bytes"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length of generated QR PNGs.
const DefaultSize = 400

// GeneratePNG returns PNG bytes of a QR code for the given text.
func GeneratePNG(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	pngBytes, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	// validate png decode
	if _, err := png.Decode(bytes.NewReader(pngBytes)); err != nil {
		return nil, err
	}
	return pngBytes, nil
}

// GenerateImage returns an image.Image for further composition.
func GenerateImage(text string, size int) (image.Image, error) {
	b, err := GeneratePNG(text, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}

// Payload is the string encoded in a ticket's QR code.
func Payload(ticketID string) string {
	return "ticket:" + ticketID
}
