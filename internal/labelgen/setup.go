package labelgen

import (
	"github.com/labstack/gommon/log"

	"github.com/label-designer/backend/internal/barcode"
	"github.com/label-designer/backend/internal/compose"
	"github.com/label-designer/backend/internal/config"
	"github.com/label-designer/backend/internal/render"
)

// OptionsFromConfig maps the rendering section of the app config onto
// encoder and generator options. Zero values keep the package defaults.
func OptionsFromConfig(rc config.RenderingConfig) (barcode.Options, Options) {
	bopts := barcode.DefaultOptions()
	if rc.BarcodeWidth > 0 {
		bopts.LinearWidth = rc.BarcodeWidth
	}
	if rc.BarcodeHeight > 0 {
		bopts.LinearHeight = rc.BarcodeHeight
	}
	if rc.BarcodeMargin >= 0 {
		bopts.LinearMargin = rc.BarcodeMargin
	}
	if rc.QRSize > 0 {
		bopts.QRSize = rc.QRSize
	}

	ropts := render.DefaultOptions()
	ropts.QRLevel = barcode.ParseECLevel(rc.QRErrorLevel, barcode.DefaultLevel)
	if rc.MaxImageEdge > 0 {
		ropts.MaxImageEdge = rc.MaxImageEdge
	}
	if rc.MaxImagePixels > 0 {
		ropts.MaxImagePixels = rc.MaxImagePixels
	}

	return bopts, Options{
		Render: ropts,
		Compose: compose.Options{
			FallbackWidth:  rc.FallbackWidth,
			FallbackHeight: rc.FallbackHeight,
		},
		Currency: rc.CurrencySymbol,
	}
}

// NewFromConfig builds a generator backed by the real barcode service.
func NewFromConfig(rc config.RenderingConfig, logger *log.Logger) *Generator {
	bopts, opts := OptionsFromConfig(rc)
	return New(barcode.NewService(bopts), opts, logger)
}
