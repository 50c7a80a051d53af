package render

import (
	"strings"
	"unicode"
)

const ellipsis = "…"

// Measurer measures a string in the current font. *gg.Context satisfies it.
type Measurer interface {
	MeasureString(s string) (w, h float64)
}

// TextSurface is a Measurer that can also paint text.
type TextSurface interface {
	Measurer
	DrawString(s string, x, y float64)
}

func textWidth(m Measurer, s string) float64 {
	w, _ := m.MeasureString(s)
	return w
}

// WrapLines greedily packs whitespace-separated words into at most maxLines
// lines no wider than maxWidth. When words are left over, the last line is
// trimmed and ends with an ellipsis. A line holding a single word that is
// wider than maxWidth is kept, clipped the same way.
func WrapLines(m Measurer, text string, maxWidth float64, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || maxLines <= 0 {
		return nil
	}

	var lines []string
	line := ""
	overflow := false
	for _, word := range words {
		if line == "" {
			line = word
			continue
		}
		candidate := line + " " + word
		if textWidth(m, candidate) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxLines {
			overflow = true
			line = ""
			break
		}
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}

	for i, l := range lines {
		last := i == len(lines)-1
		if (last && overflow) || textWidth(m, l) > maxWidth {
			lines[i] = clipWithEllipsis(m, l, maxWidth)
		}
	}
	return lines
}

// clipWithEllipsis drops trailing runes until line+"…" fits. The result is
// never shorter than the bare ellipsis.
func clipWithEllipsis(m Measurer, line string, maxWidth float64) string {
	r := []rune(strings.TrimRightFunc(line, unicode.IsSpace))
	for len(r) > 0 && textWidth(m, string(r)+ellipsis) > maxWidth {
		r = r[:len(r)-1]
		for len(r) > 0 && unicode.IsSpace(r[len(r)-1]) {
			r = r[:len(r)-1]
		}
	}
	return string(r) + ellipsis
}

// FitText wraps text with WrapLines and draws each line at y+i*lineHeight
// (y is the first baseline). It returns the number of lines drawn so callers
// can place what follows the block.
func FitText(s TextSurface, text string, x, y, maxWidth, lineHeight float64, maxLines int) int {
	lines := WrapLines(s, text, maxWidth, maxLines)
	for i, l := range lines {
		s.DrawString(l, x, y+float64(i)*lineHeight)
	}
	return len(lines)
}
