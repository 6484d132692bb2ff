// Package parser decodes label layout documents.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/label-designer/backend/internal/models"
)

// ErrMalformedLayout is returned when layout JSON cannot be decoded.
var ErrMalformedLayout = errors.New("malformed layout JSON")

// ParseLayout decodes a layout document.
//
// Field names match case-insensitively, unknown fields are ignored and
// missing optional fields take their defaults. Blank input, "null" and "{}"
// yield an empty layout (no custom layout) rather than an error. A layout
// that was stored as a JSON string holding the document is unwrapped once.
func ParseLayout(data []byte) (*models.TemplateLayout, error) {
	trimmed := bytes.TrimSpace(data)
	if isBlankLayout(trimmed) {
		return newLayout(), nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLayout, err)
		}
		inner2 := bytes.TrimSpace([]byte(inner))
		if isBlankLayout(inner2) {
			return newLayout(), nil
		}
		if inner2[0] == '"' {
			return nil, fmt.Errorf("%w: nested string layout", ErrMalformedLayout)
		}
		return ParseLayout(inner2)
	}

	layout := newLayout()
	if err := json.Unmarshal(trimmed, layout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLayout, err)
	}
	normalizeLayout(layout)
	return layout, nil
}

// ParseLayoutString is ParseLayout for stored layout strings.
func ParseLayoutString(s string) (*models.TemplateLayout, error) {
	return ParseLayout([]byte(s))
}

// ParseLayoutFile reads and decodes a layout document from disk.
func ParseLayoutFile(filePath string) (*models.TemplateLayout, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return ParseLayout(data)
}

// MarshalLayout encodes a layout into its external JSON form.
func MarshalLayout(layout *models.TemplateLayout) ([]byte, error) {
	if layout == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(layout)
}

// ValidateLayoutJSON reports whether a stored layout string can be decoded.
// Empty layouts are valid.
func ValidateLayoutJSON(s string) error {
	_, err := ParseLayoutString(s)
	return err
}

func newLayout() *models.TemplateLayout {
	return &models.TemplateLayout{
		BackgroundColor: models.DefaultBackgroundColor,
		Elements:        []models.LayoutElement{},
	}
}

func isBlankLayout(b []byte) bool {
	switch string(b) {
	case "", "null", "{}":
		return true
	}
	return false
}

// normalizeLayout applies defaults the decoder cannot express.
func normalizeLayout(layout *models.TemplateLayout) {
	if layout.BackgroundColor == "" {
		layout.BackgroundColor = models.DefaultBackgroundColor
	}
	if layout.Elements == nil {
		layout.Elements = []models.LayoutElement{}
	}
	for i := range layout.Elements {
		el := &layout.Elements[i]
		if el.ID == "" {
			el.ID = uuid.New().String()
		}
		if el.Width < 0 {
			el.Width = 0
		}
		if el.Height < 0 {
			el.Height = 0
		}
	}
}
