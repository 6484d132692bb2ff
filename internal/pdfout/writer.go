// Package pdfout serializes a composed page into a single-page PDF.
package pdfout

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/labstack/gommon/log"

	"github.com/label-designer/backend/internal/binding"
	"github.com/label-designer/backend/internal/compose"
	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/render"
)

const fontFamily = "Helvetica"

// DocumentDate is stamped into every PDF so identical input yields
// identical bytes.
var DocumentDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options sets document metadata.
type Options struct {
	Creator string
	Date    time.Time
}

// Writer draws composed pages with fpdf.
type Writer struct {
	opts Options
	log  *log.Logger
}

// New creates a writer. A zero Date means DocumentDate.
func New(opts Options, logger *log.Logger) *Writer {
	if opts.Date.IsZero() {
		opts.Date = DocumentDate
	}
	if opts.Creator == "" {
		opts.Creator = "label-designer"
	}
	return &Writer{opts: opts, log: logging.OrDiscard(logger)}
}

// Bytes renders page and returns the PDF document.
func (w *Writer) Bytes(page *compose.Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(page, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders page as a one-page PDF to out.
func (w *Writer) Write(page *compose.Page, out io.Writer) error {
	if page == nil || page.Width <= 0 || page.Height <= 0 {
		return fmt.Errorf("pdfout: invalid page size")
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(w.opts.Date)
	pdf.SetModificationDate(w.opts.Date)
	pdf.SetCreator(w.opts.Creator, true)
	pdf.SetProducer(w.opts.Creator, true)
	pdf.AddPage()

	if bg := page.Background; bg != nil {
		setFill(pdf, *bg)
		pdf.Rect(0, 0, page.Width, page.Height, "F")
	}

	checked := make(map[string]error)
	for _, it := range page.Items {
		it = w.isolateImages(it, checked)
		w.drawItem(pdf, it)
		if pdf.Err() {
			return fmt.Errorf("pdfout: element %q: %w", it.ElementID, pdf.Error())
		}
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("pdfout: %w", err)
	}
	return nil
}

func (w *Writer) drawItem(pdf *fpdf.Fpdf, it render.Instruction) {
	rotated := it.Rotation != 0
	if rotated {
		// fpdf rotates counter-clockwise; layout rotation is clockwise
		// about the element's top-left corner.
		pdf.TransformBegin()
		pdf.TransformRotate(-it.Rotation, it.Box.X, it.Box.Y)
	}
	for _, op := range it.Ops {
		switch op := op.(type) {
		case render.RectOp:
			drawRect(pdf, op)
		case render.TextOp:
			drawText(pdf, op)
		case render.ImageOp:
			drawImage(pdf, op)
		default:
			w.log.Warnf("element %q: unsupported op %T", it.ElementID, op)
		}
	}
	if rotated {
		pdf.TransformEnd()
	}
}

// isolateImages swaps each image fpdf cannot embed for an error
// placeholder. fpdf errors are sticky, so a bad image drawn into the real
// document would fail the whole page.
func (w *Writer) isolateImages(it render.Instruction, checked map[string]error) render.Instruction {
	ops := make([]render.Op, 0, len(it.Ops))
	for _, op := range it.Ops {
		img, ok := op.(render.ImageOp)
		if !ok || img.Box.Empty() || len(img.PNG) == 0 {
			ops = append(ops, op)
			continue
		}
		err, seen := checked[img.Key]
		if !seen {
			err = registerError(img)
			checked[img.Key] = err
		}
		if err != nil {
			w.log.Warnf("element %q: image dropped: %v", it.ElementID, err)
			ops = append(ops, imagePlaceholder(img.Box)...)
			continue
		}
		ops = append(ops, op)
	}
	it.Ops = ops
	return it
}

// registerError registers op in a scratch document and reports what fpdf
// made of it.
func registerError(op render.ImageOp) error {
	scratch := fpdf.New("P", "pt", "A4", "")
	scratch.RegisterImageOptionsReader(op.Key, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(op.PNG))
	return scratch.Error()
}

func imagePlaceholder(box render.Box) []render.Op {
	fill := binding.ErrorFill
	return []render.Op{
		render.RectOp{Op: render.OpRect, Box: box, Fill: &fill},
		render.TextOp{
			Op:       render.OpText,
			Box:      box,
			Text:     render.CaptionImageError,
			FontSize: 8,
			Color:    binding.Warning,
			Align:    binding.AlignCenter,
			Middle:   true,
		},
	}
}

func drawRect(pdf *fpdf.Fpdf, op render.RectOp) {
	style := ""
	if op.Fill != nil && !op.Box.Empty() {
		setFill(pdf, *op.Fill)
		style += "F"
	}
	if op.Stroke != nil && op.LineWidth > 0 {
		pdf.SetDrawColor(int(op.Stroke.R), int(op.Stroke.G), int(op.Stroke.B))
		pdf.SetLineWidth(op.LineWidth)
		style += "D"
	}
	if style == "" {
		return
	}
	pdf.Rect(op.Box.X, op.Box.Y, op.Box.W, op.Box.H, style)
}

func drawText(pdf *fpdf.Fpdf, op render.TextOp) {
	text := winAnsi(op.Text)
	if text == "" || op.FontSize <= 0 {
		return
	}

	pdf.SetFont(fontFamily, fontStyle(op.Bold, op.Italic), op.FontSize)
	pdf.SetTextColor(int(op.Color.R), int(op.Color.G), int(op.Color.B))
	lineH := render.LineHeight(op.FontSize)
	align := string(op.Align)
	if align == "" {
		align = string(binding.AlignLeft)
	}

	// Without a usable width the text is set on one line.
	if op.Box.W <= 0 {
		pdf.SetXY(op.Box.X, op.Box.Y)
		pdf.CellFormat(pdf.GetStringWidth(text), lineH, text, "", 0, "L", false, 0, "")
		return
	}

	y := op.Box.Y
	if op.Middle {
		lines := len(pdf.SplitLines([]byte(text), op.Box.W))
		y += (op.Box.H - float64(lines)*lineH) / 2
	}
	pdf.SetXY(op.Box.X, y)
	pdf.MultiCell(op.Box.W, lineH, text, "", align, false)
}

func drawImage(pdf *fpdf.Fpdf, op render.ImageOp) {
	if op.Box.Empty() || len(op.PNG) == 0 {
		return
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if pdf.GetImageInfo(op.Key) == nil {
		pdf.RegisterImageOptionsReader(op.Key, opts, bytes.NewReader(op.PNG))
	}
	pdf.ImageOptions(op.Key, op.Box.X, op.Box.Y, op.Box.W, op.Box.H, false, opts, 0, "")
}

func setFill(pdf *fpdf.Fpdf, c binding.RGB) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func fontStyle(bold, italic bool) string {
	switch {
	case bold && italic:
		return "BI"
	case bold:
		return "B"
	case italic:
		return "I"
	}
	return ""
}
