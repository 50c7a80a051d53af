package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/text/language"

	"github.com/youruser/ticketrender/internal/ticket"
)

// QRState says what was drawn in the QR panel.
type QRState string

const (
	QRImage       QRState = "image"
	QRPlaceholder QRState = "placeholder"
)

// Row is one label/value pair drawn in the info or footer panel.
type Row struct {
	Label string
	Value string
}

// Frame is a painted ticket plus a record of the conditional elements that
// ended up on it.
type Frame struct {
	Image  image.Image
	Layout Layout

	TitleLines int
	Pills      []string
	InfoRows   []Row
	FooterRows []Row
	QR         QRState
}

// painter carries the drawing context for one render. Every draw step takes
// it explicitly; nothing is shared between renders.
type painter struct {
	dc    *gg.Context
	fonts *fontBook
	l     Layout
	in    *Inputs
	rec   *ticket.Record
	frame *Frame

	locale language.Tag
}

// Paint draws the ticket in fixed z-order. It never blocks; all assets must
// already be in in.
func Paint(in *Inputs) (*Frame, error) {
	if in == nil || in.Logo == nil {
		return nil, ErrLogoUnavailable
	}
	fb, err := newFontBook()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCanvasUnavailable, err)
	}
	defer fb.close()

	rec := in.Record
	if rec == nil {
		rec = &ticket.Record{}
	}
	tpl := in.Template
	if tpl != TemplateB {
		tpl = TemplateA
	}
	locale := in.Locale
	if locale == language.Und {
		locale = language.English
	}

	l := Layouts.Get(CanvasWidth, CanvasHeight, tpl)
	p := &painter{
		dc:    gg.NewContext(CanvasWidth, CanvasHeight),
		fonts: fb,
		l:     l,
		in:    in,
		rec:   rec,
		frame: &Frame{Layout: l},

		locale: locale,
	}

	p.background()
	p.card()
	p.header()
	p.accentBar()
	p.pills()
	p.infoPanel()
	p.qrPanel()
	if l.HasStub {
		p.stub()
	}
	p.footer()

	p.frame.Image = p.dc.Image()
	return p.frame, nil
}

func (p *painter) font(s faceStyle) {
	p.dc.SetFontFace(p.fonts.face(s))
}

func (p *painter) fillRounded(r Region, c color.Color) {
	p.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, r.Radius)
	p.dc.SetColor(c)
	p.dc.Fill()
}

func (p *painter) strokeRounded(r Region, c color.Color, width float64) {
	p.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, r.Radius)
	p.dc.SetColor(c)
	p.dc.SetLineWidth(width)
	p.dc.Stroke()
}

// text draws a single line clipped to maxWidth.
func (p *painter) text(s string, x, y, maxWidth float64) {
	FitText(p.dc, s, x, y, maxWidth, 0, 1)
}
