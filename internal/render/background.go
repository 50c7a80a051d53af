package render

import (
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

type circle struct {
	x, y, r float64
	c       color.RGBA
	alpha   uint8
}

// Fixed decoration tables; positions must not depend on anything but the
// template so that renders stay byte-identical.
var (
	softCircles = []circle{
		{x: 90, y: 70, r: 140, c: colHeaderStart, alpha: 22},
		{x: 1130, y: 110, r: 170, c: colHeaderEnd, alpha: 18},
		{x: 1060, y: 600, r: 120, c: colHeaderMid, alpha: 20},
		{x: 160, y: 610, r: 100, c: colAccentStart, alpha: 22},
		{x: 620, y: -40, r: 90, c: colHeaderMid, alpha: 14},
	}
	radialBlobs = []circle{
		{x: 120, y: 90, r: 260, c: colHeaderStart, alpha: 90},
		{x: 1100, y: 80, r: 240, c: colHeaderEnd, alpha: 80},
		{x: 980, y: 640, r: 280, c: colHeaderMid, alpha: 70},
		{x: 260, y: 660, r: 220, c: colAccentStart, alpha: 60},
	}
)

const (
	dotSpacing    = 24
	dotRadius     = 1.3
	dashSpacing   = 90
	shadowOffsetY = 10
	shadowBlur    = 12
)

func (p *painter) background() {
	dc := p.dc
	g := gg.NewLinearGradient(0, 0, p.l.Width, p.l.Height)
	g.AddColorStop(0, colWashTop)
	g.AddColorStop(1, colWashBottom)
	dc.SetFillStyle(g)
	dc.DrawRectangle(0, 0, p.l.Width, p.l.Height)
	dc.Fill()

	switch p.l.Motif {
	case MotifBlobsDashes:
		p.radialBlobs()
		p.diagonalDashes()
	default:
		p.softCircles()
		p.dotGrid()
	}
}

func (p *painter) softCircles() {
	for _, c := range softCircles {
		p.dc.DrawCircle(c.x, c.y, c.r)
		p.dc.SetColor(withAlpha(c.c, c.alpha))
		p.dc.Fill()
	}
}

func (p *painter) dotGrid() {
	p.dc.SetColor(withAlpha(colMuted, 40))
	for y := float64(dotSpacing / 2); y < p.l.Height; y += dotSpacing {
		for x := float64(dotSpacing / 2); x < p.l.Width; x += dotSpacing {
			p.dc.DrawCircle(x, y, dotRadius)
		}
	}
	p.dc.Fill()
}

func (p *painter) radialBlobs() {
	for _, b := range radialBlobs {
		g := gg.NewRadialGradient(b.x, b.y, 0, b.x, b.y, b.r)
		g.AddColorStop(0, withAlpha(b.c, b.alpha))
		g.AddColorStop(1, withAlpha(b.c, 0))
		p.dc.SetFillStyle(g)
		p.dc.DrawCircle(b.x, b.y, b.r)
		p.dc.Fill()
	}
}

func (p *painter) diagonalDashes() {
	dc := p.dc
	dc.Push()
	dc.SetColor(withAlpha(colHeaderMid, 36))
	dc.SetLineWidth(2)
	dc.SetDash(12, 10)
	for x := -p.l.Height; x < p.l.Width; x += dashSpacing {
		dc.DrawLine(x, p.l.Height, x+p.l.Height, 0)
		dc.Stroke()
	}
	dc.SetDash()
	dc.Pop()
}

// card draws the blurred drop shadow, the white card and its border.
func (p *painter) card() {
	c := p.l.Card
	shadow := gg.NewContext(int(p.l.Width), int(p.l.Height))
	shadow.DrawRoundedRectangle(c.X, c.Y+shadowOffsetY, c.W, c.H, c.Radius)
	shadow.SetColor(color.NRGBA{0x0f, 0x17, 0x2a, 46})
	shadow.Fill()
	p.dc.DrawImage(imaging.Blur(shadow.Image(), shadowBlur), 0, 0)

	p.fillRounded(c, colCard)
	p.strokeRounded(c, colCardBorder, 2)
}
