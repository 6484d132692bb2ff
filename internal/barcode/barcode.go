// Package barcode produces the raster images the label renderer embeds for
// barcode and QR elements.
package barcode

import (
	"strings"
)

// LinearEncoder renders a one-dimensional barcode for text.
type LinearEncoder interface {
	EncodeLinear(text string) ([]byte, error)
}

// MatrixEncoder renders a two-dimensional (QR) code for text.
type MatrixEncoder interface {
	Encode2D(text string, level ECLevel) ([]byte, error)
}

// ECLevel is a QR error-correction level.
type ECLevel string

const (
	LevelL ECLevel = "L" // ~7% recovery
	LevelM ECLevel = "M" // ~15%
	LevelQ ECLevel = "Q" // ~25%
	LevelH ECLevel = "H" // ~30%
)

// DefaultLevel is used when neither configuration nor element picks one.
const DefaultLevel = LevelQ

// ParseECLevel reads a level name, returning def when s is not one of L, M, Q, H.
func ParseECLevel(s string, def ECLevel) ECLevel {
	switch ECLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelL:
		return LevelL
	case LevelM:
		return LevelM
	case LevelQ:
		return LevelQ
	case LevelH:
		return LevelH
	}
	return def
}

// Options sets the fixed raster parameters of the encoders.
type Options struct {
	LinearWidth  int
	LinearHeight int
	LinearMargin int
	QRSize       int
}

// DefaultOptions returns 300x100 barcodes with a 2px margin and 256px QR codes.
func DefaultOptions() Options {
	return Options{
		LinearWidth:  300,
		LinearHeight: 100,
		LinearMargin: 2,
		QRSize:       256,
	}
}

// Service bundles the CODE_128 and QR encoders.
type Service struct {
	*Code128Encoder
	*QREncoder
}

// NewService creates both encoders from opts.
func NewService(opts Options) *Service {
	return &Service{
		Code128Encoder: NewCode128Encoder(opts.LinearWidth, opts.LinearHeight, opts.LinearMargin),
		QREncoder:      NewQREncoder(opts.QRSize),
	}
}
