package render

import (
	"image/color"
	"strings"
)

var (
	colWashTop     = color.RGBA{0xee, 0xf2, 0xff, 0xff}
	colWashBottom  = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	colCard        = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colCardBorder  = color.RGBA{0xe2, 0xe8, 0xf0, 0xff}
	colHeaderStart = color.RGBA{0x4f, 0x46, 0xe5, 0xff}
	colHeaderMid   = color.RGBA{0x7c, 0x3a, 0xed, 0xff}
	colHeaderEnd   = color.RGBA{0xdb, 0x27, 0x77, 0xff}
	colAccentStart = color.RGBA{0xf5, 0x9e, 0x0b, 0xff}
	colAccentEnd   = color.RGBA{0xec, 0x48, 0x99, 0xff}
	colPanel       = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	colPanelBorder = color.RGBA{0xe2, 0xe8, 0xf0, 0xff}
	colFooter      = color.RGBA{0x0f, 0x17, 0x2a, 0xff}
	colInk         = color.RGBA{0x0f, 0x17, 0x2a, 0xff}
	colMuted       = color.RGBA{0x64, 0x74, 0x8b, 0xff}
	colFooterMuted = color.RGBA{0x94, 0xa3, 0xb8, 0xff}
	colBracket     = color.RGBA{0x4f, 0x46, 0xe5, 0xff}
	colQRFrame     = color.RGBA{0xc7, 0xd2, 0xfe, 0xff}
	colStubLine    = color.RGBA{0xcb, 0xd5, 0xe1, 0xff}
	colWhite       = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// pillColor picks the badge fill for a status or ticket type value.
func pillColor(kind, value string) color.RGBA {
	v := strings.ToLower(value)
	if kind == "status" {
		switch v {
		case "active", "valid", "confirmed", "paid", "issued":
			return color.RGBA{0x16, 0xa3, 0x4a, 0xff}
		case "used", "checked_in", "redeemed":
			return color.RGBA{0x47, 0x55, 0x69, 0xff}
		case "cancelled", "canceled", "refunded", "expired", "void":
			return color.RGBA{0xdc, 0x26, 0x26, 0xff}
		case "pending", "reserved":
			return color.RGBA{0xd9, 0x77, 0x06, 0xff}
		}
		return color.RGBA{0x25, 0x63, 0xeb, 0xff}
	}
	switch v {
	case "vip", "vvip", "premium":
		return color.RGBA{0xb4, 0x53, 0x09, 0xff}
	}
	return color.RGBA{0x7c, 0x3a, 0xed, 0xff}
}

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
