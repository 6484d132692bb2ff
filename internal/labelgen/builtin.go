package labelgen

import (
	"math"

	"github.com/label-designer/backend/internal/binding"
	"github.com/label-designer/backend/internal/compose"
	"github.com/label-designer/backend/internal/render"
)

// Record fields and fallbacks of the built-in label.
const (
	FieldProductName = "ProductName"
	FieldPrice       = "Price"
	FieldCode        = "Code"

	DefaultProductName = "Sample Product"
	DefaultPrice       = "99.99"

	// DefaultCurrency prefixes the price on the built-in label.
	DefaultCurrency = "₹"

	// ErrorPrefix starts the message of the error label.
	ErrorPrefix = "Error generating label: "
)

const (
	builtinWidth  = compose.DefaultPageWidth
	builtinHeight = compose.DefaultPageHeight
	defaultMargin = 10
	errorMargin   = 20
	codeHeight    = 40
)

// column stacks items top to bottom inside the page margins.
type column struct {
	page *compose.Page
	x, w float64
	y    float64
}

func newColumn(margin float64) *column {
	return &column{
		page: &compose.Page{Width: builtinWidth, Height: builtinHeight},
		x:    margin,
		w:    builtinWidth - 2*margin,
		y:    margin,
	}
}

func (c *column) add(id, typ string, gap float64, op render.Op, h float64) {
	c.y += gap
	box := render.Box{X: c.x, Y: c.y, W: c.w, H: h}
	switch o := op.(type) {
	case render.TextOp:
		o.Box = box
		op = o
	case render.ImageOp:
		box = c.fit(o, h, typ == "qrcode")
		o.Box = box
		op = o
	}
	c.page.Items = append(c.page.Items, render.Instruction{
		ElementID: id,
		Type:      typ,
		Kind:      typ,
		Box:       box,
		Ops:       []render.Op{op},
	})
	c.y += h
}

func (c *column) text(id string, gap float64, text string, size float64, color binding.RGB, bold bool) {
	op := render.NewText(render.Box{}, text, size, color)
	op.Bold = bold
	c.add(id, "text", gap, op, render.LineHeight(size))
}

// fit scales an image to height h keeping its aspect ratio, capped at the
// column width.
func (c *column) fit(op render.ImageOp, h float64, alignRight bool) render.Box {
	w := h
	if op.Width > 0 && op.Height > 0 {
		w = h * float64(op.Width) / float64(op.Height)
	}
	if w > c.w {
		h = h * c.w / w
		w = c.w
	}
	x := c.x
	if alignRight {
		x = c.x + c.w - w
	}
	return render.Box{X: x, Y: c.y, W: math.Max(0, w), H: h}
}

// defaultPage builds the single-column fallback label. It fails only when
// an encoder does.
func (g *Generator) defaultPage(rec binding.Record) (*compose.Page, error) {
	name := rec.Get(FieldProductName, DefaultProductName)
	price := rec.Get(FieldPrice, DefaultPrice)
	code := rec.Get(FieldCode, binding.DefaultCode)

	linear, err := g.enc.EncodeLinear(code)
	if err != nil {
		return nil, err
	}
	bar, err := render.NewImage(render.Box{}, linear, g.opts.Render.ImageLimits())
	if err != nil {
		return nil, err
	}
	matrix, err := g.enc.Encode2D(code, g.opts.Render.QRLevel)
	if err != nil {
		return nil, err
	}
	qr, err := render.NewImage(render.Box{}, matrix, g.opts.Render.ImageLimits())
	if err != nil {
		return nil, err
	}

	col := newColumn(defaultMargin)
	col.text("default-name", 0, name, 14, binding.Black, true)
	col.text("default-price", 5, g.opts.Currency+price, 12, binding.Black, false)
	col.add("default-barcode", "barcode", 10, bar, codeHeight)
	col.add("default-qrcode", "qrcode", 5, qr, codeHeight)
	col.text("default-code", 5, code, 8, binding.Caption, false)
	return col.page, nil
}

// errorPage builds the terminal error label showing msg in red.
func errorPage(msg string) *compose.Page {
	col := newColumn(errorMargin)
	op := render.NewText(render.Box{}, ErrorPrefix+msg, 12, binding.Warning)
	col.add("error-message", "text", 0, op, builtinHeight-2*errorMargin)
	return col.page
}
