package binding

import "github.com/label-designer/backend/internal/models"

// Built-in fallbacks used when neither the record nor the element supplies data.
const (
	SampleText  = "Sample Text"
	DefaultCode = "123456789"
)

// Bound returns the record value for the field named by the element
// property key (usually "dataField"). ok is false when the element does not
// declare the property or the record lacks the field.
func Bound(p models.Properties, key string, rec Record) (string, bool) {
	field, ok := p.Lookup(key).String()
	if !ok {
		return "", false
	}
	return rec.Lookup(field)
}

// ResolveText returns the display string of a text element:
// bound record value, then content, then text, then "Sample Text".
// A bound value wins even when it is empty.
func ResolveText(p models.Properties, rec Record) string {
	if v, ok := Bound(p, "dataField", rec); ok {
		return v
	}
	if s, ok := p.Content.String(); ok {
		return s
	}
	if s, ok := p.Text.String(); ok {
		return s
	}
	return SampleText
}

// ResolveCode returns the payload of a barcode or QR element:
// non-empty bound record value, then non-empty data, then "123456789".
func ResolveCode(p models.Properties, rec Record) string {
	if v, ok := Bound(p, "dataField", rec); ok && v != "" {
		return v
	}
	if s, ok := p.Data.String(); ok && s != "" {
		return s
	}
	return DefaultCode
}

// ImageOrigin names where an image payload came from.
type ImageOrigin string

const (
	OriginElementID ImageOrigin = "record:id"
	OriginDataField ImageOrigin = "record:dataField"
	OriginData      ImageOrigin = "data"
	OriginImageData ImageOrigin = "imageData"
	OriginSrc       ImageOrigin = "src"
)

// ImageSource is an unresolved image payload (base64, optionally a data URI).
type ImageSource struct {
	Payload string
	Origin  ImageOrigin
}

type imageCandidate struct {
	value  models.Value
	origin ImageOrigin
}

// ResolveImage finds the payload of an image element.
//
// Static images: bound dataField, then imageData, then src.
// Dynamic images: the record entry keyed by the element id, then bound
// dataField, then data, then imageData, then src.
// ok is false when nothing supplies a payload.
func ResolveImage(el models.LayoutElement, rec Record) (ImageSource, bool) {
	p := el.Properties
	if el.Kind() == models.KindDynamicImage && el.ID != "" {
		if v, ok := rec.Lookup(el.ID); ok && v != "" {
			return ImageSource{Payload: v, Origin: OriginElementID}, true
		}
	}
	if v, ok := Bound(p, "dataField", rec); ok && v != "" {
		return ImageSource{Payload: v, Origin: OriginDataField}, true
	}

	var candidates []imageCandidate
	if el.Kind() == models.KindDynamicImage {
		candidates = append(candidates, imageCandidate{p.Data, OriginData})
	}
	candidates = append(candidates,
		imageCandidate{p.ImageData, OriginImageData},
		imageCandidate{p.Src, OriginSrc},
	)
	for _, c := range candidates {
		if s, ok := c.value.String(); ok && s != "" {
			return ImageSource{Payload: s, Origin: c.origin}, true
		}
	}
	return ImageSource{}, false
}
