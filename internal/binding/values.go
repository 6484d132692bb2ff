package binding

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/label-designer/backend/internal/models"
)

// Numeric property defaults and limits.
const (
	DefaultFontSize    = 12.0
	MinFontSize        = 6.0
	MaxFontSize        = 72.0
	DefaultBorderWidth = 1.0
	DefaultLineWidth   = 1.0
	DefaultRotation    = 0.0
)

// ParseNumber converts a property value to a float. It accepts JSON numbers,
// Go numeric types and numeric strings with surrounding space, digit
// separators ('_' or ','), a "pt"/"px" unit suffix, and 0x/0b/0o prefixes.
func ParseNumber(raw any) (float64, bool) {
	switch t := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return t, isFinite(t)
	case float32:
		return float64(t), isFinite(float64(t))
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		return parseNumericString(t.String())
	case string:
		return parseNumericString(t)
	default:
		return 0, false
	}
}

func parseNumericString(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, "pt")
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	t := strings.ReplaceAll(s, ",", "")
	if hasRadixPrefix(t) {
		i, err := strconv.ParseInt(t, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(i), true
	}

	t = strings.ReplaceAll(t, "_", "")
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

// hasRadixPrefix reports a 0x, 0b or 0o prefix after an optional sign.
// Plain leading zeros stay decimal.
func hasRadixPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if len(s) < 3 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'b', 'o':
		return true
	}
	return false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Number returns the numeric form of a declared property value.
func Number(v models.Value) (float64, bool) {
	if !v.IsSet() {
		return 0, false
	}
	return ParseNumber(v.Raw())
}

// NumberOr returns the first parsable value among vs, or def.
func NumberOr(def float64, vs ...models.Value) float64 {
	for _, v := range vs {
		if f, ok := Number(v); ok {
			return f
		}
	}
	return def
}

// FontSize returns the element font size clamped to [6, 72], default 12.
func FontSize(p models.Properties) float64 {
	size := NumberOr(DefaultFontSize, p.FontSize)
	return math.Max(MinFontSize, math.Min(MaxFontSize, size))
}

// BorderWidth returns borderWidth, then strokeWidth, then 1.
func BorderWidth(p models.Properties) float64 {
	return NumberOr(DefaultBorderWidth, p.BorderWidth, p.StrokeWidth)
}

// LineWidth returns width, then strokeWidth, then 1.
func LineWidth(p models.Properties) float64 {
	return NumberOr(DefaultLineWidth, p.Width, p.StrokeWidth)
}

// Rotation returns the rotation in degrees, default 0.
func Rotation(p models.Properties) float64 {
	return NumberOr(DefaultRotation, p.Rotation)
}

// IsBold reports fontWeight == "bold", case-insensitively.
func IsBold(p models.Properties) bool {
	return strings.EqualFold(strings.TrimSpace(p.FontWeight.StringOr("")), "bold")
}

// IsItalic reports fontStyle == "italic", case-insensitively.
func IsItalic(p models.Properties) bool {
	return strings.EqualFold(strings.TrimSpace(p.FontStyle.StringOr("")), "italic")
}

// Alignment is the horizontal alignment of text within its box.
type Alignment string

const (
	AlignLeft   Alignment = "L"
	AlignCenter Alignment = "C"
	AlignRight  Alignment = "R"
)

// TextAlignment reads textAlign, then alignment. Default is left.
func TextAlignment(p models.Properties) Alignment {
	raw := p.TextAlign.StringOr(p.Alignment.StringOr(""))
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "center", "centre", "middle":
		return AlignCenter
	case "right", "end":
		return AlignRight
	default:
		return AlignLeft
	}
}
