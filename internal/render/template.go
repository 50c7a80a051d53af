package render

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTemplate   = errors.New("unknown ticket template")
	ErrUnknownFormat     = errors.New("unknown artifact format")
	ErrLogoUnavailable   = errors.New("brand logo unavailable")
	ErrCanvasUnavailable = errors.New("canvas unavailable")
)

// Template selects the background treatment of a ticket.
type Template string

const (
	// TemplateA: soft circles and a dot grid.
	TemplateA Template = "A"
	// TemplateB: radial blobs, diagonal dashes and a perforated stub.
	TemplateB Template = "B"
)

// ParseTemplate accepts "a"/"b" in any case; empty means A.
func ParseTemplate(s string) (Template, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "A":
		return TemplateA, nil
	case "B":
		return TemplateB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
}

// Format is an export format.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts "png"/"pdf" in any case; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}
