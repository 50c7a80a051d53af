package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type weight int

const (
	regular weight = iota
	medium
	bold
)

// faceStyle names every text style used on the ticket.
type faceStyle int

const (
	styleTitle faceStyle = iota
	styleSubtitle
	styleBadge
	stylePill
	styleLabel
	styleValue
	styleScanLabel
	styleCaption
	styleFooterLabel
	styleFooterValue
	styleFine
	styleStub
	stylePlaceholder
)

var styles = map[faceStyle]struct {
	w    weight
	size float64
}{
	styleTitle:       {bold, 28},
	styleSubtitle:    {regular, 16},
	styleBadge:       {bold, 13},
	stylePill:        {bold, 13},
	styleLabel:       {medium, 12},
	styleValue:       {medium, 17},
	styleScanLabel:   {bold, 15},
	styleCaption:     {regular, 13},
	styleFooterLabel: {medium, 11},
	styleFooterValue: {bold, 15},
	styleFine:        {regular, 11},
	styleStub:        {bold, 14},
	stylePlaceholder: {medium, 16},
}

var (
	fontsOnce sync.Once
	fonts     map[weight]*opentype.Font
	fontsErr  error
)

// parsedFonts parses the bundled Go fonts once; *opentype.Font is safe to
// share, faces are not.
func parsedFonts() (map[weight]*opentype.Font, error) {
	fontsOnce.Do(func() {
		src := map[weight][]byte{
			regular: goregular.TTF,
			medium:  gomedium.TTF,
			bold:    gobold.TTF,
		}
		fonts = make(map[weight]*opentype.Font, len(src))
		for w, ttf := range src {
			f, err := opentype.Parse(ttf)
			if err != nil {
				fontsErr = fmt.Errorf("parse font: %w", err)
				return
			}
			fonts[w] = f
		}
	})
	return fonts, fontsErr
}

// fontBook holds the faces of a single render.
type fontBook struct {
	faces map[faceStyle]font.Face
}

func newFontBook() (*fontBook, error) {
	parsed, err := parsedFonts()
	if err != nil {
		return nil, err
	}
	b := &fontBook{faces: make(map[faceStyle]font.Face, len(styles))}
	for s, def := range styles {
		face, err := opentype.NewFace(parsed[def.w], &opentype.FaceOptions{
			Size:    def.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			b.close()
			return nil, fmt.Errorf("font face %d: %w", s, err)
		}
		b.faces[s] = face
	}
	return b, nil
}

func (b *fontBook) face(s faceStyle) font.Face {
	return b.faces[s]
}

func (b *fontBook) close() {
	for _, f := range b.faces {
		f.Close()
	}
}
