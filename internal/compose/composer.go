// Package compose lays out every element of a template onto a single page.
package compose

import (
	"math"
	"sort"

	"github.com/labstack/gommon/log"

	"github.com/label-designer/backend/internal/binding"
	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/models"
	"github.com/label-designer/backend/internal/render"
)

// Fallback page size in points for layouts without a usable size.
const (
	DefaultPageWidth  = 300
	DefaultPageHeight = 200
)

// Page is a composed label: page geometry plus rendered elements in
// painting order.
type Page struct {
	Width      float64              `json:"width" msgpack:"width"`
	Height     float64              `json:"height" msgpack:"height"`
	Background *binding.RGB         `json:"background,omitempty" msgpack:"background,omitempty"`
	Items      []render.Instruction `json:"items" msgpack:"items"`
}

// Degraded returns the items that fell back to a placeholder.
func (p *Page) Degraded() []render.Instruction {
	var out []render.Instruction
	for _, it := range p.Items {
		if it.Degraded {
			out = append(out, it)
		}
	}
	return out
}

// Options configures the composer.
type Options struct {
	FallbackWidth  float64
	FallbackHeight float64
}

// Composer places rendered elements on a page.
type Composer struct {
	renderer *render.Renderer
	opts     Options
	log      *log.Logger
}

// New creates a composer. Zero fallback sizes mean 300x200.
func New(r *render.Renderer, opts Options, logger *log.Logger) *Composer {
	if opts.FallbackWidth <= 0 {
		opts.FallbackWidth = DefaultPageWidth
	}
	if opts.FallbackHeight <= 0 {
		opts.FallbackHeight = DefaultPageHeight
	}
	return &Composer{renderer: r, opts: opts, log: logging.OrDiscard(logger)}
}

// PageSize returns the layout size, or the fallback when either side is not
// positive.
func (c *Composer) PageSize(layout *models.TemplateLayout) (float64, float64) {
	if layout == nil || layout.Width <= 0 || layout.Height <= 0 {
		return c.opts.FallbackWidth, c.opts.FallbackHeight
	}
	return layout.Width, layout.Height
}

// Compose renders every element of layout against rec. Elements are
// painted in ascending zIndex; equal zIndex keeps document order.
func (c *Composer) Compose(layout *models.TemplateLayout, rec binding.Record) *Page {
	w, h := c.PageSize(layout)
	page := &Page{Width: w, Height: h}
	if layout == nil {
		return page
	}

	if bg := layout.BackgroundColor; bg != "" && !binding.IsWhite(bg) && !binding.IsTransparent(bg) {
		if color, ok := binding.ParseColor(bg); ok {
			page.Background = &color
		} else {
			c.log.Warnf("ignoring background color %q", bg)
		}
	}

	order := make([]int, len(layout.Elements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return layout.Elements[order[a]].ZIndex < layout.Elements[order[b]].ZIndex
	})

	page.Items = make([]render.Instruction, 0, len(order))
	for _, idx := range order {
		el := layout.Elements[idx]
		ins := c.renderer.Render(el, elementBox(el), rec)
		ins.Rotation = binding.Rotation(el.Properties)
		page.Items = append(page.Items, ins)
	}

	if n := len(page.Degraded()); n > 0 {
		c.log.Debugf("composed %d elements, %d degraded", len(page.Items), n)
	}
	return page
}

// elementBox converts element geometry to a box, clamping size at zero.
func elementBox(el models.LayoutElement) render.Box {
	return render.Box{
		X: el.X,
		Y: el.Y,
		W: math.Max(0, el.Width),
		H: math.Max(0, el.Height),
	}
}
