package render

import (
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/label-designer/backend/internal/barcode"
	"github.com/label-designer/backend/internal/binding"
	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/models"
)

// Placeholder captions and font sizes.
const (
	CaptionImage        = "[Image]"
	CaptionDynamicImage = "[Dynamic Image]"
	CaptionImageError   = "[Image Error]"
	CaptionError        = "[Error]"

	placeholderFontSize = 10
	warningFontSize     = 8
)

// Options tunes element rendering.
type Options struct {
	// QRLevel applies when an element does not set errorCorrectionLevel.
	QRLevel barcode.ECLevel
	// MaxImageEdge bounds embedded image size in pixels; 0 disables it.
	MaxImageEdge int
	// MaxImagePixels bounds the canvas an image may declare before it is
	// decoded; 0 means DefaultMaxImagePixels.
	MaxImagePixels int
}

// DefaultOptions returns level Q, a 2048px image bound and a 40M pixel
// decode budget.
func DefaultOptions() Options {
	return Options{
		QRLevel:        barcode.DefaultLevel,
		MaxImageEdge:   DefaultMaxImageEdge,
		MaxImagePixels: DefaultMaxImagePixels,
	}
}

// ImageLimits returns the image bounds of o.
func (o Options) ImageLimits() ImageLimits {
	return ImageLimits{MaxEdge: o.MaxImageEdge, MaxPixels: o.MaxImagePixels}
}

// Renderer renders layout elements against a data record.
type Renderer struct {
	linear barcode.LinearEncoder
	matrix barcode.MatrixEncoder
	opts   Options
	log    *log.Logger
}

// New creates a renderer. A nil logger discards output.
func New(linear barcode.LinearEncoder, matrix barcode.MatrixEncoder, opts Options, logger *log.Logger) *Renderer {
	if opts.QRLevel == "" {
		opts.QRLevel = barcode.DefaultLevel
	}
	return &Renderer{
		linear: linear,
		matrix: matrix,
		opts:   opts,
		log:    logging.OrDiscard(logger),
	}
}

type result struct {
	ops      []Op
	degraded bool
	reason   string
}

func degraded(reason string, ops ...Op) result {
	return result{ops: ops, degraded: true, reason: reason}
}

// Render draws el inside box. It never fails; a panic inside an element
// handler is turned into an "[Error]" marker.
func (r *Renderer) Render(el models.LayoutElement, box Box, rec binding.Record) (ins Instruction) {
	kind := el.Kind()
	ins = Instruction{
		ElementID: el.ID,
		Type:      el.Type,
		Kind:      kind.String(),
		Box:       box,
		ZIndex:    el.ZIndex,
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Errorf("element %q (%s) failed: %v", el.ID, el.Type, p)
			ins.Ops = []Op{NewText(box, CaptionError, warningFontSize, binding.Warning)}
			ins.Degraded = true
			ins.Reason = fmt.Sprint(p)
		}
	}()

	var res result
	switch kind {
	case models.KindText:
		res = r.text(el, box, rec)
	case models.KindBarcode:
		res = r.barcode(el, box, rec)
	case models.KindQRCode:
		res = r.qrcode(el, box, rec)
	case models.KindImage, models.KindDynamicImage:
		res = r.image(el, box, rec)
	case models.KindRectangle:
		res = r.rectangle(el, box)
	case models.KindLine:
		res = r.line(el, box)
	case models.KindUnknown:
		res = r.unknown(el, box)
	default:
		res = r.unknown(el, box)
	}

	ins.Ops = res.ops
	ins.Degraded = res.degraded
	ins.Reason = res.reason
	if res.degraded {
		r.log.Debugf("element %q (%s) degraded: %s", el.ID, el.Type, res.reason)
	}
	return ins
}

func (r *Renderer) text(el models.LayoutElement, box Box, rec binding.Record) result {
	p := el.Properties
	op := NewText(box, binding.ResolveText(p, rec), binding.FontSize(p), binding.ColorOr(binding.Black, p.Color))
	op.Bold = binding.IsBold(p)
	op.Italic = binding.IsItalic(p)
	op.Align = binding.TextAlignment(p)
	return result{ops: []Op{op}}
}

func (r *Renderer) barcode(el models.LayoutElement, box Box, rec binding.Record) result {
	payload := binding.ResolveCode(el.Properties, rec)
	if r.linear == nil {
		return degraded("no linear encoder", codeFallback(box, payload))
	}
	raw, err := r.linear.EncodeLinear(payload)
	if err != nil {
		r.log.Warnf("barcode %q: %v", el.ID, err)
		return degraded(err.Error(), codeFallback(box, payload))
	}
	return r.raster(box, raw, func(err error) result {
		return degraded(err.Error(), codeFallback(box, payload))
	})
}

func (r *Renderer) qrcode(el models.LayoutElement, box Box, rec binding.Record) result {
	payload := binding.ResolveCode(el.Properties, rec)
	level := barcode.ParseECLevel(el.Properties.ErrorCorrectionLevel.StringOr(""), r.opts.QRLevel)
	if r.matrix == nil {
		return degraded("no matrix encoder", codeFallback(box, payload))
	}
	raw, err := r.matrix.Encode2D(payload, level)
	if err != nil {
		r.log.Warnf("qrcode %q: %v", el.ID, err)
		return degraded(err.Error(), codeFallback(box, payload))
	}
	return r.raster(box, raw, func(err error) result {
		return degraded(err.Error(), codeFallback(box, payload))
	})
}

func (r *Renderer) image(el models.LayoutElement, box Box, rec binding.Record) result {
	src, ok := binding.ResolveImage(el, rec)
	if !ok {
		caption := CaptionImage
		if el.Kind() == models.KindDynamicImage {
			caption = CaptionDynamicImage
		}
		return degraded("no image data", placeholder(box, caption, binding.Placeholder, placeholderFontSize)...)
	}

	data, err := decodePayload(src.Payload)
	if err != nil {
		r.log.Warnf("image %q from %s: %v", el.ID, src.Origin, err)
		return degraded(err.Error(), placeholder(box, CaptionImageError, binding.ErrorFill, warningFontSize)...)
	}
	return r.raster(box, data, func(err error) result {
		r.log.Warnf("image %q from %s: %v", el.ID, src.Origin, err)
		return degraded(err.Error(), placeholder(box, CaptionImageError, binding.ErrorFill, warningFontSize)...)
	})
}

// raster normalizes encoded image bytes into an ImageOp filling box.
func (r *Renderer) raster(box Box, data []byte, onError func(error) result) result {
	op, err := NewImage(box, data, r.opts.ImageLimits())
	if err != nil {
		return onError(err)
	}
	return result{ops: []Op{op}}
}

func (r *Renderer) rectangle(el models.LayoutElement, box Box) result {
	p := el.Properties
	fill := binding.Paint(binding.LightGray, p.FillColor, p.Fill)
	stroke := binding.Paint(binding.Black, p.BorderColor, p.Stroke, p.StrokeColor)
	width := binding.BorderWidth(p)
	if width <= 0 {
		stroke = nil
		width = 0
	}
	return result{ops: []Op{rectOp(box, fill, stroke, width)}}
}

// line draws a horizontal bar across the box width at its top edge.
func (r *Renderer) line(el models.LayoutElement, box Box) result {
	p := el.Properties
	color := binding.ColorOr(binding.Black, p.Color, p.Stroke, p.StrokeColor)
	width := binding.LineWidth(p)
	if width < 0 {
		width = 0
	}
	bar := Box{X: box.X, Y: box.Y, W: box.W, H: width}
	return result{ops: []Op{rectOp(bar, &color, nil, 0)}}
}

func (r *Renderer) unknown(el models.LayoutElement, box Box) result {
	msg := fmt.Sprintf("[Unknown: %s]", el.Type)
	return degraded("unknown element type "+el.Type, NewText(box, msg, warningFontSize, binding.Warning))
}

// codeFallback shows the payload as small text when encoding fails.
func codeFallback(box Box, payload string) Op {
	return NewText(box, payload, warningFontSize, binding.Black)
}

func placeholder(box Box, caption string, fill binding.RGB, size float64) []Op {
	label := NewText(box, caption, size, binding.Caption)
	label.Align = binding.AlignCenter
	label.Middle = true
	return []Op{rectOp(box, &fill, nil, 0), label}
}
