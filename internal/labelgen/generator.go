// Package labelgen runs the label generation pipeline: parse the layout,
// compose it, and fall back to the built-in label and finally to an error
// label. Generate always returns a PDF.
package labelgen

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/label-designer/backend/internal/barcode"
	"github.com/label-designer/backend/internal/binding"
	"github.com/label-designer/backend/internal/compose"
	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/models"
	"github.com/label-designer/backend/internal/parser"
	"github.com/label-designer/backend/internal/pdfout"
	"github.com/label-designer/backend/internal/render"
)

// Outcome tells which pipeline state produced a document.
type Outcome string

const (
	OutcomeCustom  Outcome = "custom"
	OutcomeDefault Outcome = "default"
	OutcomeError   Outcome = "error"
)

// Encoders is the pair of barcode encoders the pipeline needs.
type Encoders interface {
	barcode.LinearEncoder
	barcode.MatrixEncoder
}

// Options configures a Generator.
type Options struct {
	Render   render.Options
	Compose  compose.Options
	PDF      pdfout.Options
	Currency string
	// Now stamps generated filenames; defaults to time.Now.
	Now func() time.Time
}

// Result is one generated document.
type Result struct {
	PDF      []byte
	Filename string
	Outcome  Outcome
	// Err is the failure that forced a fallback, if any.
	Err error
}

// Generator turns layouts and records into PDF labels. It holds no
// per-call state and is safe for concurrent use.
type Generator struct {
	enc      Encoders
	composer *compose.Composer
	writer   *pdfout.Writer
	opts     Options
	log      *log.Logger
	lastPDF  []byte
}

// New creates a generator.
func New(enc Encoders, opts Options, logger *log.Logger) *Generator {
	logger = logging.OrDiscard(logger)
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Render.QRLevel == "" {
		opts.Render.QRLevel = barcode.DefaultLevel
	}

	g := &Generator{
		enc:      enc,
		composer: compose.New(render.New(enc, enc, opts.Render, logger), opts.Compose, logger),
		writer:   pdfout.New(opts.PDF, logger),
		opts:     opts,
		log:      logger,
	}
	// Pre-rendered last resort for when even the error label cannot be drawn.
	if pdf, err := g.writer.Bytes(errorPage("unavailable")); err == nil {
		g.lastPDF = pdf
	}
	return g
}

// Filename returns label-YYYYMMDD-HHMMSS.pdf for t in UTC.
func Filename(t time.Time) string {
	return "label-" + t.UTC().Format("20060102-150405") + ".pdf"
}

// Generate renders req against layoutJSON. Required fields must already
// have been checked with CheckRequired.
func (g *Generator) Generate(req models.LabelRequest, layoutJSON string) *Result {
	res := &Result{Filename: Filename(g.opts.Now())}
	rec := binding.NewRecord(req.Data)

	if layout, ok := g.parse(layoutJSON); ok {
		pdf, err := guard(func() ([]byte, error) {
			return g.writer.Bytes(g.composer.Compose(layout, rec))
		})
		if err == nil {
			res.PDF, res.Outcome = pdf, OutcomeCustom
			return res
		}
		g.log.Warnf("custom layout failed, using default label: %v", err)
		res.Err = err
	}

	pdf, err := guard(func() ([]byte, error) {
		page, err := g.defaultPage(rec)
		if err != nil {
			return nil, err
		}
		return g.writer.Bytes(page)
	})
	if err == nil {
		res.PDF, res.Outcome = pdf, OutcomeDefault
		return res
	}

	g.log.Errorf("default label failed: %v", err)
	res.Err = err
	res.PDF, res.Outcome = g.errorPDF(err), OutcomeError
	return res
}

// Plan runs the same states as Generate but returns the composed page
// instead of PDF bytes.
func (g *Generator) Plan(layoutJSON string, data map[string]string) (*compose.Page, Outcome) {
	rec := binding.NewRecord(data)

	if layout, ok := g.parse(layoutJSON); ok {
		page, err := guard(func() (*compose.Page, error) {
			return g.composer.Compose(layout, rec), nil
		})
		if err == nil {
			return page, OutcomeCustom
		}
		g.log.Warnf("custom layout failed, using default label: %v", err)
	}

	page, err := guard(func() (*compose.Page, error) {
		return g.defaultPage(rec)
	})
	if err == nil {
		return page, OutcomeDefault
	}
	g.log.Errorf("default label failed: %v", err)
	return errorPage(err.Error()), OutcomeError
}

// parse reports whether layoutJSON holds a usable custom layout.
func (g *Generator) parse(layoutJSON string) (*models.TemplateLayout, bool) {
	layout, err := parser.ParseLayoutString(layoutJSON)
	if err != nil {
		g.log.Warnf("invalid layout, using default label: %v", err)
		return nil, false
	}
	if layout.IsEmpty() {
		g.log.Debugf("no custom layout, using default label")
		return nil, false
	}
	g.log.Debugf("using custom layout with %d elements", len(layout.Elements))
	return layout, true
}

func (g *Generator) errorPDF(cause error) []byte {
	pdf, err := guard(func() ([]byte, error) {
		return g.writer.Bytes(errorPage(cause.Error()))
	})
	if err != nil {
		g.log.Errorf("error label failed: %v", err)
		return g.lastPDF
	}
	return pdf
}

// String implements fmt.Stringer for log lines.
func (r *Result) String() string {
	return fmt.Sprintf("%s (%s, %d bytes)", r.Filename, r.Outcome, len(r.PDF))
}
