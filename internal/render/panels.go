package render

import (
	"math"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	titleMaxWidth   = 720
	titleLineHeight = 30
	titleMaxLines   = 2
	badgeText       = "OFFICIAL E-TICKET"
	badgePadX       = 16
	badgeHeight     = 32
	pillPadX        = 14
	pillGap         = 10
	infoRowHeight   = 38
	infoLabelInset  = 24
	infoValueInset  = 140
	qrInset         = 12
	bracketLen      = 26
	bracketOffset   = 10
	placeholderText = "QR code not available"
	scanLabel       = "SCAN AT ENTRANCE"
	qrCaption       = "Present this code at the venue entrance"
	admitOne        = "ADMIT ONE"
	missing         = "—"
	termsText       = "Valid for one admission only. Non-transferable and non-refundable. " +
		"Entry subject to the organizer's terms and conditions."
)

func (p *painter) header() {
	dc := p.dc
	h := p.l.Header

	// the band follows the card's rounded top corners
	dc.DrawRoundedRectangle(p.l.Card.X, p.l.Card.Y, p.l.Card.W, p.l.Card.H, p.l.Card.Radius)
	dc.Clip()
	g := gg.NewLinearGradient(h.X, h.Y, h.Right(), h.Bottom())
	g.AddColorStop(0, colHeaderStart)
	g.AddColorStop(0.55, colHeaderMid)
	g.AddColorStop(1, colHeaderEnd)
	dc.SetFillStyle(g)
	dc.DrawRectangle(h.X, h.Y, h.W, h.H)
	dc.Fill()

	dc.SetColor(withAlpha(colWhite, 20))
	dc.DrawCircle(h.Right()-60, h.Y+10, 90)
	dc.Fill()
	dc.DrawCircle(h.Right()-230, h.Bottom()+30, 70)
	dc.Fill()
	dc.ResetClip()

	p.logo()

	titleX := p.l.Logo.Right() + 20
	firstBaseline := h.Y + 42
	dc.SetColor(colWhite)
	p.font(styleTitle)
	n := FitText(dc, p.rec.EventTitle.String(), titleX, firstBaseline, titleMaxWidth, titleLineHeight, titleMaxLines)
	p.frame.TitleLines = n

	p.font(styleSubtitle)
	dc.SetColor(withAlpha(colWhite, 220))
	p.text(p.subtitle(), titleX, firstBaseline+float64(n)*titleLineHeight+2, titleMaxWidth)

	p.font(styleBadge)
	w, _ := dc.MeasureString(badgeText)
	badge := Region{
		X: h.Right() - contentInset - (w + 2*badgePadX),
		Y: h.Y + 24,
		W: w + 2*badgePadX, H: badgeHeight, Radius: badgeHeight / 2,
	}
	p.fillRounded(badge, withAlpha(colWhite, 40))
	p.strokeRounded(badge, withAlpha(colWhite, 150), 1.5)
	dc.SetColor(colWhite)
	dc.DrawStringAnchored(badgeText, badge.CenterX(), badge.CenterY(), 0.5, 0.35)
}

func (p *painter) logo() {
	r := p.l.Logo
	r.Radius = 18
	p.fillRounded(r, colWhite)
	img := imaging.Fit(p.in.Logo, int(r.W)-12, int(r.H)-12, imaging.Lanczos)
	p.dc.DrawImageAnchored(img, int(r.CenterX()), int(r.CenterY()), 0.5, 0.5)
}

func (p *painter) subtitle() string {
	var parts []string
	if d := formatDate(p.rec.EventStartDate.String()); d != "" {
		parts = append(parts, d)
	}
	if v := p.rec.Venue(); v != "" {
		parts = append(parts, v)
	}
	if len(parts) == 0 {
		return "Admission ticket"
	}
	return strings.Join(parts, "  ·  ")
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatDate pretty-prints ISO dates and passes anything else through.
func formatDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Mon, 02 Jan 2006")
		}
	}
	return s
}

func (p *painter) accentBar() {
	a := p.l.AccentBar
	g := gg.NewLinearGradient(a.X, a.Y, a.Right(), a.Y)
	g.AddColorStop(0, colAccentStart)
	g.AddColorStop(1, colAccentEnd)
	p.dc.SetFillStyle(g)
	p.dc.DrawRectangle(a.X, a.Y, a.W, a.H)
	p.dc.Fill()
}

// pills lays out the status and type badges left to right; empty values
// are skipped and a pill that would leave the row is dropped.
func (p *painter) pills() {
	dc := p.dc
	row := p.l.Pills
	p.font(stylePill)
	x := row.X
	for _, pill := range []struct{ kind, value string }{
		{"status", p.rec.Status.String()},
		{"type", p.rec.TicketType.String()},
	} {
		if pill.value == "" {
			continue
		}
		label := strings.ToUpper(strings.ReplaceAll(pill.value, "_", " "))
		w, _ := dc.MeasureString(label)
		r := Region{X: x, Y: row.Y, W: w + 2*pillPadX, H: row.H, Radius: row.H / 2}
		if r.Right() > row.Right() {
			break
		}
		p.fillRounded(r, pillColor(pill.kind, pill.value))
		dc.SetColor(colWhite)
		dc.DrawStringAnchored(label, r.CenterX(), r.CenterY(), 0.5, 0.35)
		p.frame.Pills = append(p.frame.Pills, label)
		x = r.Right() + pillGap
	}
}

// infoPanel draws the event rows. Each row has a fixed slot so a missing
// row leaves a gap instead of shifting the others; empty rows are skipped.
func (p *painter) infoPanel() {
	dc := p.dc
	r := p.l.Info
	p.fillRounded(r, colPanel)
	p.strokeRounded(r, colPanelBorder, 1.5)

	rows := []Row{
		{"DATE", formatDate(p.rec.EventStartDate.String())},
		{"TIME", p.rec.Time()},
		{"VENUE", p.rec.Venue()},
		{"SEAT", p.rec.Seat()},
		{"TICKET ID", p.rec.ID.String()},
	}
	valueWidth := r.W - infoValueInset - infoLabelInset
	for i, row := range rows {
		if row.Value == "" {
			continue
		}
		y := r.Y + 36 + float64(i)*infoRowHeight
		p.font(styleLabel)
		dc.SetColor(colMuted)
		dc.DrawString(row.Label, r.X+infoLabelInset, y)
		p.font(styleValue)
		dc.SetColor(colInk)
		p.text(row.Value, r.X+infoValueInset, y, valueWidth)
		p.frame.InfoRows = append(p.frame.InfoRows, row)
	}
}

func (p *painter) qrPanel() {
	dc := p.dc
	r := p.l.QR
	p.fillRounded(r, colCard)
	p.strokeRounded(r, colPanelBorder, 1.5)

	if !p.rec.WantsQR() || p.in.QR == nil || p.in.QR.Image == nil {
		p.font(stylePlaceholder)
		dc.SetColor(colMuted)
		dc.DrawStringAnchored(placeholderText, r.CenterX(), r.CenterY(), 0.5, 0.35)
		p.frame.QR = QRPlaceholder
		return
	}

	p.font(styleScanLabel)
	dc.SetColor(colInk)
	dc.DrawStringAnchored(scanLabel, r.CenterX(), r.Y+44, 0.5, 0.35)

	f := p.l.QRFrame
	p.fillRounded(f, colWhite)
	p.strokeRounded(f, colQRFrame, 3)
	size := int(f.W) - 2*qrInset
	code := imaging.Resize(p.in.QR.Image, size, size, imaging.NearestNeighbor)
	dc.DrawImage(code, int(f.X)+qrInset, int(f.Y)+qrInset)
	p.brackets(f)

	p.font(styleCaption)
	dc.SetColor(colMuted)
	p.textCentered(qrCaption, r.CenterX(), f.Bottom()+40, r.W-40)
	p.font(styleScanLabel)
	dc.SetColor(colInk)
	p.textCentered(p.rec.Identifier(), r.CenterX(), f.Bottom()+66, r.W-40)
	p.frame.QR = QRImage
}

// brackets draws the four L-shaped corner marks around the QR frame.
func (p *painter) brackets(f Region) {
	dc := p.dc
	dc.Push()
	dc.SetColor(colBracket)
	dc.SetLineWidth(4)
	dc.SetLineCapRound()
	x0, y0 := f.X-bracketOffset, f.Y-bracketOffset
	x1, y1 := f.Right()+bracketOffset, f.Bottom()+bracketOffset
	for _, c := range [][4]float64{
		{x0, y0, 1, 1},
		{x1, y0, -1, 1},
		{x0, y1, 1, -1},
		{x1, y1, -1, -1},
	} {
		x, y, dx, dy := c[0], c[1], c[2], c[3]
		dc.MoveTo(x, y+dy*bracketLen)
		dc.LineTo(x, y)
		dc.LineTo(x+dx*bracketLen, y)
		dc.Stroke()
	}
	dc.Pop()
}

func (p *painter) textCentered(s string, cx, y, maxWidth float64) {
	lines := WrapLines(p.dc, s, maxWidth, 1)
	if len(lines) == 0 {
		return
	}
	p.dc.DrawStringAnchored(lines[0], cx, y, 0.5, 0)
}

// stub draws the perforated cut line and the rotated ADMIT ONE label just
// left of the QR panel.
func (p *painter) stub() {
	dc := p.dc
	s := p.l.Stub
	dc.Push()
	dc.SetColor(colStubLine)
	dc.SetLineWidth(2)
	dc.SetDash(8, 6)
	dc.DrawLine(s.X, s.Y, s.X, s.Bottom())
	dc.Stroke()
	dc.SetDash()
	dc.Pop()

	for _, y := range []float64{s.Y, s.Bottom()} {
		dc.DrawCircle(s.X, y, 5)
		dc.SetColor(colStubLine)
		dc.Fill()
	}

	p.font(styleStub)
	dc.Push()
	cx, cy := s.X-14, s.CenterY()
	dc.RotateAbout(-math.Pi/2, cx, cy)
	dc.SetColor(colMuted)
	dc.DrawStringAnchored(admitOne, cx, cy, 0.5, 0.35)
	dc.Pop()
}

// footer draws the attendee, price and order rows. Unlike the info panel,
// a missing value is shown as a dash.
func (p *painter) footer() {
	dc := p.dc
	r := p.l.Footer
	p.fillRounded(r, colFooter)

	rows := []Row{
		{"ATTENDEE", p.rec.Attendee()},
		{"PRICE", p.rec.PriceLabel(p.locale)},
		{"ORDER REF", p.rec.Order()},
	}
	colWidth := (r.W - 2*infoLabelInset) / float64(len(rows))
	x := r.X + infoLabelInset
	for _, row := range rows {
		if row.Label == "" && row.Value == "" {
			continue
		}
		if row.Value == "" {
			row.Value = missing
		}
		p.font(styleFooterLabel)
		dc.SetColor(colFooterMuted)
		dc.DrawString(row.Label, x, r.Y+30)
		p.font(styleFooterValue)
		dc.SetColor(colWhite)
		p.text(row.Value, x, r.Y+54, colWidth-16)
		p.frame.FooterRows = append(p.frame.FooterRows, row)
		x += colWidth
	}

	p.font(styleFine)
	dc.SetColor(colFooterMuted)
	FitText(dc, termsText, r.X+infoLabelInset, r.Y+84, r.W-2*infoLabelInset, 15, 2)

	brand := strings.TrimSpace(p.in.Brand)
	if brand == "" {
		brand = "Ticketing"
	}
	dc.DrawString("© "+brand+". All rights reserved.", r.X+infoLabelInset, r.Bottom()-16)

	id := p.rec.Identifier()
	if id == "" {
		id = missing
	}
	p.font(styleFooterValue)
	dc.SetColor(colWhite)
	dc.DrawStringAnchored("No. "+id, r.Right()-infoLabelInset, r.Bottom()-16, 1, 0)
}
