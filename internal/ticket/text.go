package ticket

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Text is a free-text ticket field. Upstream services are loose about types
// (seat numbers arrive as numbers, flags as booleans), so any JSON scalar
// decodes into its trimmed string form and null becomes "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
	case '{', '[':
		// objects and arrays carry nothing printable
		*t = ""
	default:
		*t = Text(strings.TrimSpace(string(b)))
	}
	return nil
}

// String returns the trimmed value.
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// Empty reports whether the field has no printable content.
func (t Text) Empty() bool {
	return t.String() == ""
}

// Amount is a monetary field. Numbers and numeric strings are accepted;
// anything else leaves the amount unset instead of failing the record.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	a.Value = d
	a.Valid = true
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Value.String()), nil
}

// NewAmount is a convenience for building records in code.
func NewAmount(v float64) Amount {
	return Amount{Value: decimal.NewFromFloat(v), Valid: true}
}
