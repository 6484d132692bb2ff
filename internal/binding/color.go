package binding

import (
	"strconv"
	"strings"

	"github.com/label-designer/backend/internal/models"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R uint8 `json:"r" msgpack:"r"`
	G uint8 `json:"g" msgpack:"g"`
	B uint8 `json:"b" msgpack:"b"`
}

// Hex returns the color as #RRGGBB.
func (c RGB) Hex() string {
	const digits = "0123456789ABCDEF"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0F]
	}
	return string(b)
}

// Palette used by the renderers.
var (
	Black       = RGB{0, 0, 0}
	White       = RGB{0xFF, 0xFF, 0xFF}
	LightGray   = RGB{0xCC, 0xCC, 0xCC}
	Placeholder = RGB{0xF0, 0xF0, 0xF0}
	ErrorFill   = RGB{0xFF, 0xE0, 0xE0}
	Warning     = RGB{0xFF, 0x00, 0x00}
	Caption     = RGB{0x66, 0x66, 0x66}
)

var namedColors = map[string]RGB{
	"black": Black,
	"white": White,
	"red":   {0xFF, 0, 0},
	"green": {0, 0x80, 0},
	"blue":  {0, 0, 0xFF},
	"gray":  {0x80, 0x80, 0x80},
	"grey":  {0x80, 0x80, 0x80},
}

// ParseColor parses #RGB, #RRGGBB, #AARRGGBB and a few color names.
// Alpha is ignored.
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, true
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		hex = hex[2:]
	default:
		return RGB{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// IsTransparent reports whether a color string asks for no paint at all.
func IsTransparent(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transparent", "none":
		return true
	}
	return false
}

// IsWhite reports whether s names pure white.
func IsWhite(s string) bool {
	c, ok := ParseColor(s)
	return ok && c == White
}

// ColorOr returns the first declared, parsable color among vs, or def.
func ColorOr(def RGB, vs ...models.Value) RGB {
	for _, v := range vs {
		s, ok := v.NonEmpty()
		if !ok {
			continue
		}
		if c, ok := ParseColor(s); ok {
			return c
		}
	}
	return def
}

// Paint resolves an optional fill or stroke: the first declared value wins,
// "transparent"/"none" disables painting, an unparsable value falls back to def.
func Paint(def RGB, vs ...models.Value) *RGB {
	for _, v := range vs {
		s, ok := v.NonEmpty()
		if !ok {
			continue
		}
		if IsTransparent(s) {
			return nil
		}
		if c, ok := ParseColor(s); ok {
			return &c
		}
		break
	}
	return &def
}
