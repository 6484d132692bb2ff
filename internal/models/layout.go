// Package models contains domain types for the label designer.
package models

import "strings"

// ElementKind is the closed set of element types the renderer understands.
type ElementKind int

const (
	KindUnknown ElementKind = iota
	KindText
	KindBarcode
	KindQRCode
	KindImage
	KindDynamicImage
	KindRectangle
	KindLine
)

var kindNames = [...]string{
	KindUnknown:      "unknown",
	KindText:         "text",
	KindBarcode:      "barcode",
	KindQRCode:       "qrcode",
	KindImage:        "image",
	KindDynamicImage: "dynamic-image",
	KindRectangle:    "rectangle",
	KindLine:         "line",
}

func (k ElementKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// elementTags maps authored type tags (lower case) to their kind.
// Authoring tools use a few aliases for the same drawing policy.
var elementTags = map[string]ElementKind{
	"text":          KindText,
	"dynamic-text":  KindText,
	"product-code":  KindText,
	"barcode":       KindBarcode,
	"qrcode":        KindQRCode,
	"image":         KindImage,
	"logo":          KindImage,
	"dynamic-image": KindDynamicImage,
	"rectangle":     KindRectangle,
	"line":          KindLine,
}

// KindOf classifies an authored type tag. Matching is case-insensitive.
func KindOf(tag string) ElementKind {
	if k, ok := elementTags[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return k
	}
	return KindUnknown
}

// LayoutElement is one positioned, typed drawable unit within a layout.
// Geometry is in page-local points, origin top-left, y increasing downward.
type LayoutElement struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	ZIndex     int            `json:"zIndex"`
	Properties Properties     `json:"properties"`
	Style      map[string]any `json:"style,omitempty"`
}

// Kind returns the element's classified type. Type keeps the original tag.
func (e LayoutElement) Kind() ElementKind {
	return KindOf(e.Type)
}

// TemplateLayout is the JSON-described arrangement of elements on one page.
type TemplateLayout struct {
	Width           float64         `json:"width"`
	Height          float64         `json:"height"`
	BackgroundColor string          `json:"backgroundColor"`
	Elements        []LayoutElement `json:"elements"`
	Settings        map[string]any  `json:"settings,omitempty"`
}

// DefaultBackgroundColor is used when a layout does not declare one.
const DefaultBackgroundColor = "#FFFFFF"

// IsEmpty reports whether the layout carries no elements, which means
// "no custom layout" rather than an error.
func (l *TemplateLayout) IsEmpty() bool {
	return l == nil || len(l.Elements) == 0
}
