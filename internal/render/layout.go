package render

import "sync"

// Canvas size shared by every ticket. All geometry below is absolute.
const (
	CanvasWidth  = 1200
	CanvasHeight = 650
)

// Region is a named box on the canvas.
type Region struct {
	X, Y, W, H float64
	Radius     float64
}

func (r Region) Right() float64   { return r.X + r.W }
func (r Region) Bottom() float64  { return r.Y + r.H }
func (r Region) CenterX() float64 { return r.X + r.W/2 }
func (r Region) CenterY() float64 { return r.Y + r.H/2 }

// Overlaps reports whether two regions share any interior area.
func (r Region) Overlaps(o Region) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely inside r.
func (r Region) Contains(o Region) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Motif is the decorative set drawn behind the card.
type Motif int

const (
	MotifCirclesDots Motif = iota
	MotifBlobsDashes
)

// Layout is the full set of regions for one template and canvas size.
type Layout struct {
	Width, Height float64
	Template      Template

	Card      Region
	Header    Region
	Logo      Region
	AccentBar Region
	Pills     Region
	Info      Region
	QR        Region
	QRFrame   Region
	Footer    Region

	// Stub is the perforated cut line; only meaningful when HasStub.
	Stub    Region
	HasStub bool
	Motif   Motif
}

const (
	cardInsetX     = 40
	cardInsetY     = 36
	cardRadius     = 28
	headerHeight   = 124
	accentHeight   = 6
	contentInset   = 32
	pillsGap       = 14
	pillHeight     = 30
	infoWidth      = 620
	infoHeight     = 210
	panelRadius    = 18
	qrWidth        = 380
	qrHeight       = 430
	qrRadius       = 22
	qrFrameSize    = 260
	qrFrameTop     = 76
	footerTopGap   = 16
	footerHeight   = 150
	logoSize       = 72
	stubGap        = 26
	sectionSpacing = 14
)

// ComputeLayout derives every region from the canvas size and template.
func ComputeLayout(w, h int, tpl Template) Layout {
	W, H := float64(w), float64(h)
	l := Layout{Width: W, Height: H, Template: tpl}

	l.Card = Region{X: cardInsetX, Y: cardInsetY, W: W - 2*cardInsetX, H: H - 2*cardInsetY, Radius: cardRadius}
	l.Header = Region{X: l.Card.X, Y: l.Card.Y, W: l.Card.W, H: headerHeight}
	l.Logo = Region{
		X: l.Header.X + contentInset,
		Y: l.Header.Y + (headerHeight-logoSize)/2,
		W: logoSize, H: logoSize,
	}
	l.AccentBar = Region{X: l.Card.X, Y: l.Header.Bottom(), W: l.Card.W, H: accentHeight}

	l.QR = Region{
		X: l.Card.Right() - contentInset - 4 - qrWidth,
		Y: l.AccentBar.Bottom() + 10,
		W: qrWidth, H: qrHeight, Radius: qrRadius,
	}
	l.QRFrame = Region{
		X: l.QR.CenterX() - qrFrameSize/2,
		Y: l.QR.Y + qrFrameTop,
		W: qrFrameSize, H: qrFrameSize, Radius: 16,
	}

	left := l.Card.X + contentInset
	l.Pills = Region{X: left, Y: l.AccentBar.Bottom() + sectionSpacing, W: infoWidth - 20, H: pillHeight}
	l.Info = Region{X: left, Y: l.Pills.Bottom() + sectionSpacing, W: infoWidth, H: infoHeight, Radius: panelRadius}
	l.Footer = Region{X: left, Y: l.Info.Bottom() + footerTopGap, W: infoWidth, H: footerHeight, Radius: panelRadius}

	switch tpl {
	case TemplateB:
		l.Motif = MotifBlobsDashes
		l.HasStub = true
		l.Stub = Region{X: l.QR.X - stubGap, Y: l.QR.Y, W: 0, H: l.QR.H}
	default:
		l.Motif = MotifCirclesDots
	}
	return l
}

type layoutKey struct {
	w, h int
	tpl  Template
}

// LayoutCache memoizes ComputeLayout. Layouts carry no per-ticket state so
// one cache can be shared by concurrent renders.
type LayoutCache struct {
	mu sync.Mutex
	m  map[layoutKey]Layout
}

func (c *LayoutCache) Get(w, h int, tpl Template) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := layoutKey{w, h, tpl}
	if l, ok := c.m[k]; ok {
		return l
	}
	if c.m == nil {
		c.m = make(map[layoutKey]Layout)
	}
	l := ComputeLayout(w, h, tpl)
	c.m[k] = l
	return l
}

// Layouts is the process-wide layout cache.
var Layouts = &LayoutCache{}
