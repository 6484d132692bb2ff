package barcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/disintegration/imaging"
)

// ErrEmptyPayload is returned for empty encoder input.
var ErrEmptyPayload = errors.New("barcode: empty payload")

// Code128Encoder renders CODE_128 barcodes as PNG on a white canvas.
type Code128Encoder struct {
	width  int
	height int
	margin int
}

// NewCode128Encoder creates an encoder producing width x height images with
// a quiet margin on every side.
func NewCode128Encoder(width, height, margin int) *Code128Encoder {
	if margin < 0 {
		margin = 0
	}
	return &Code128Encoder{width: width, height: height, margin: margin}
}

// EncodeLinear implements LinearEncoder.
func (e *Code128Encoder) EncodeLinear(text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyPayload
	}
	bc, err := code128.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encoding CODE_128: %w", err)
	}

	innerW := e.width - 2*e.margin
	innerH := e.height - 2*e.margin
	// Long payloads need at least one pixel per module.
	if modules := bc.Bounds().Dx(); innerW < modules {
		innerW = modules
	}
	if innerH < 1 {
		innerH = 1
	}

	scaled, err := barcode.Scale(bc, innerW, innerH)
	if err != nil {
		return nil, fmt.Errorf("scaling CODE_128: %w", err)
	}

	canvas := imaging.New(innerW+2*e.margin, innerH+2*e.margin, color.White)
	canvas = imaging.Paste(canvas, scaled, image.Pt(e.margin, e.margin))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("writing CODE_128 PNG: %w", err)
	}
	return buf.Bytes(), nil
}
