package pdfout

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// transliterations cover symbols outside WinAnsi that labels commonly carry.
var transliterations = map[rune]string{
	'\u20B9': "Rs.", // rupee
	'\u20BD': "RUB",
	'\u20BA': "TL",
	'\u20A9': "W",
	'\u20AB': "d",
	'\u20B1': "P",
	'\u2212': "-", // minus sign
	'\u2010': "-",
	'\u2011': "-",
	'\u00A0': " ",
	'\u2009': " ",
	'\u202F': " ",
	'\u2713': "v",
	'\u2714': "v",
}

// winAnsi converts UTF-8 text to the single-byte encoding of the PDF core
// fonts. Unmappable runes become '?'.
func winAnsi(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if t, ok := transliterations[r]; ok {
			b.WriteString(t)
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}
