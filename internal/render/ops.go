// Package render turns individual layout elements into drawing operations.
//
// Renderers never fail: unresolvable content becomes a visible placeholder
// and the instruction is marked Degraded.
package render

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/label-designer/backend/internal/binding"
)

// Box is an absolute rectangle in points. The origin is the top-left corner
// of the page and y grows downwards.
type Box struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

// Empty reports whether the box has no drawable area.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Op is a single drawing operation. Implementations are RectOp, TextOp and
// ImageOp.
type Op interface {
	opName() string
}

// Operation names carried in the Op field of each operation.
const (
	OpRect  = "rect"
	OpText  = "text"
	OpImage = "image"
)

// RectOp fills and/or strokes a rectangle. A nil color skips that part.
type RectOp struct {
	Op        string       `json:"op" msgpack:"op"`
	Box       Box          `json:"box" msgpack:"box"`
	Fill      *binding.RGB `json:"fill,omitempty" msgpack:"fill,omitempty"`
	Stroke    *binding.RGB `json:"stroke,omitempty" msgpack:"stroke,omitempty"`
	LineWidth float64      `json:"lineWidth,omitempty" msgpack:"lineWidth,omitempty"`
}

func (RectOp) opName() string { return OpRect }

// TextOp draws text inside a box, wrapping at the box width.
type TextOp struct {
	Op       string            `json:"op" msgpack:"op"`
	Box      Box               `json:"box" msgpack:"box"`
	Text     string            `json:"text" msgpack:"text"`
	FontSize float64           `json:"fontSize" msgpack:"fontSize"`
	Color    binding.RGB       `json:"color" msgpack:"color"`
	Bold     bool              `json:"bold,omitempty" msgpack:"bold,omitempty"`
	Italic   bool              `json:"italic,omitempty" msgpack:"italic,omitempty"`
	Align    binding.Alignment `json:"align" msgpack:"align"`
	// Middle centers the text block vertically.
	Middle bool `json:"middle,omitempty" msgpack:"middle,omitempty"`
}

func (TextOp) opName() string { return OpText }

// ImageOp draws a PNG scaled to fill its box.
type ImageOp struct {
	Op     string `json:"op" msgpack:"op"`
	Box    Box    `json:"box" msgpack:"box"`
	Key    string `json:"key" msgpack:"key"`
	Width  int    `json:"pixelWidth" msgpack:"pixelWidth"`
	Height int    `json:"pixelHeight" msgpack:"pixelHeight"`
	PNG    []byte `json:"-" msgpack:"-"`
}

func (ImageOp) opName() string { return OpImage }

// Name returns the operation name of op.
func Name(op Op) string {
	return op.opName()
}

func rectOp(box Box, fill, stroke *binding.RGB, lineWidth float64) RectOp {
	return RectOp{Op: OpRect, Box: box, Fill: fill, Stroke: stroke, LineWidth: lineWidth}
}

// NewText returns a left-aligned text operation.
func NewText(box Box, text string, size float64, color binding.RGB) TextOp {
	return TextOp{Op: OpText, Box: box, Text: text, FontSize: size, Color: color, Align: binding.AlignLeft}
}

func imageOp(box Box, png []byte, w, h int) ImageOp {
	return ImageOp{Op: OpImage, Box: box, Key: ImageKey(png), Width: w, Height: h, PNG: png}
}

// NewImage normalizes encoded raster bytes into an operation filling box.
func NewImage(box Box, data []byte, lim ImageLimits) (ImageOp, error) {
	png, w, h, err := normalizeImage(data, lim)
	if err != nil {
		return ImageOp{}, err
	}
	return imageOp(box, png, w, h), nil
}

// LineHeight is the distance between consecutive text lines at size.
func LineHeight(size float64) float64 {
	return size * lineFactor
}

const lineFactor = 1.2

// ImageKey returns a stable resource name for PNG bytes, so identical
// images are embedded once.
func ImageKey(png []byte) string {
	return fmt.Sprintf("img-%016x", xxh3.Hash(png))
}

// Instruction is the rendered form of one layout element.
type Instruction struct {
	ElementID string  `json:"elementId" msgpack:"elementId"`
	Type      string  `json:"type" msgpack:"type"`
	Kind      string  `json:"kind" msgpack:"kind"`
	Box       Box     `json:"box" msgpack:"box"`
	ZIndex    int     `json:"zIndex" msgpack:"zIndex"`
	Rotation  float64 `json:"rotation,omitempty" msgpack:"rotation,omitempty"`
	Ops       []Op    `json:"ops" msgpack:"ops"`
	Degraded  bool    `json:"degraded,omitempty" msgpack:"degraded,omitempty"`
	Reason    string  `json:"reason,omitempty" msgpack:"reason,omitempty"`
}
