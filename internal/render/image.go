package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxImageEdge bounds the longest edge of embedded images in pixels.
const DefaultMaxImageEdge = 2048

// DefaultMaxImagePixels bounds the canvas a payload may declare before it
// is decoded. 40M pixels decode to about 160MB of NRGBA.
const DefaultMaxImagePixels = 40_000_000

var (
	errEmptyImage    = errors.New("empty image payload")
	errImageTooLarge = errors.New("image too large")
)

// ImageLimits bounds image payloads.
type ImageLimits struct {
	// MaxEdge is the longest edge after downscaling; 0 disables it.
	MaxEdge int
	// MaxPixels is the largest declared width*height accepted for
	// decoding; 0 means DefaultMaxImagePixels.
	MaxPixels int
}

func (l ImageLimits) maxPixels() int {
	if l.MaxPixels <= 0 {
		return DefaultMaxImagePixels
	}
	return l.MaxPixels
}

// checkDimensions reads only the image header and rejects canvases over
// the pixel budget.
func checkDimensions(data []byte, maxPixels int) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errEmptyImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", errImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}
	return nil
}

// decodePayload strips an optional data-URI prefix and decodes base64.
func decodePayload(payload string) ([]byte, error) {
	s := payload
	if i := strings.LastIndexByte(s, ','); i >= 0 {
		s = s[i+1:]
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, errEmptyImage
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
		return raw, nil
	}
	return nil, fmt.Errorf("decoding base64: %w", err)
}

// normalizeImage decodes any supported raster format and re-encodes it as
// PNG, shrinking it to fit the edge limit. It returns the PNG and its pixel
// size.
func normalizeImage(data []byte, lim ImageLimits) ([]byte, int, int, error) {
	if len(data) == 0 {
		return nil, 0, 0, errEmptyImage
	}
	if err := checkDimensions(data, lim.maxPixels()); err != nil {
		return nil, 0, 0, err
	}
	maxEdge := lim.MaxEdge
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoding image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, 0, 0, errEmptyImage
	}
	if maxEdge > 0 && (b.Dx() > maxEdge || b.Dy() > maxEdge) {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
		b = img.Bounds()
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, 0, 0, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), b.Dx(), b.Dy(), nil
}
