package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Properties holds per-element configuration. Keys understood by the
// renderers are typed fields; anything an authoring tool adds on top is
// preserved in Extra.
type Properties struct {
	DataField            Value
	Content              Value
	Text                 Value
	FontSize             Value
	Color                Value
	FontWeight           Value
	FontStyle            Value
	TextAlign            Value
	Alignment            Value
	Fill                 Value
	FillColor            Value
	Stroke               Value
	StrokeColor          Value
	BorderColor          Value
	StrokeWidth          Value
	BorderWidth          Value
	Width                Value
	Data                 Value
	ImageData            Value
	Src                  Value
	Rotation             Value
	ErrorCorrectionLevel Value

	Extra map[string]any
}

// propertyFields maps the external key of every known property to its field.
var propertyFields = map[string]func(p *Properties) *Value{
	"dataField":            func(p *Properties) *Value { return &p.DataField },
	"content":              func(p *Properties) *Value { return &p.Content },
	"text":                 func(p *Properties) *Value { return &p.Text },
	"fontSize":             func(p *Properties) *Value { return &p.FontSize },
	"color":                func(p *Properties) *Value { return &p.Color },
	"fontWeight":           func(p *Properties) *Value { return &p.FontWeight },
	"fontStyle":            func(p *Properties) *Value { return &p.FontStyle },
	"textAlign":            func(p *Properties) *Value { return &p.TextAlign },
	"alignment":            func(p *Properties) *Value { return &p.Alignment },
	"fill":                 func(p *Properties) *Value { return &p.Fill },
	"fillColor":            func(p *Properties) *Value { return &p.FillColor },
	"stroke":               func(p *Properties) *Value { return &p.Stroke },
	"strokeColor":          func(p *Properties) *Value { return &p.StrokeColor },
	"borderColor":          func(p *Properties) *Value { return &p.BorderColor },
	"strokeWidth":          func(p *Properties) *Value { return &p.StrokeWidth },
	"borderWidth":          func(p *Properties) *Value { return &p.BorderWidth },
	"width":                func(p *Properties) *Value { return &p.Width },
	"data":                 func(p *Properties) *Value { return &p.Data },
	"imageData":            func(p *Properties) *Value { return &p.ImageData },
	"src":                  func(p *Properties) *Value { return &p.Src },
	"rotation":             func(p *Properties) *Value { return &p.Rotation },
	"errorCorrectionLevel": func(p *Properties) *Value { return &p.ErrorCorrectionLevel },
}

// NewProperties builds Properties from a plain key/value map.
func NewProperties(m map[string]any) Properties {
	var p Properties
	for k, v := range m {
		p.Set(k, v)
	}
	return p
}

// Set stores a value under its external key.
func (p *Properties) Set(key string, v any) {
	if field, ok := propertyFields[key]; ok {
		*field(p) = NewValue(v)
		return
	}
	if p.Extra == nil {
		p.Extra = make(map[string]any)
	}
	p.Extra[key] = v
}

// Lookup returns the value stored under an external key, known or extra.
func (p Properties) Lookup(key string) Value {
	if field, ok := propertyFields[key]; ok {
		return *field(&p)
	}
	if v, ok := p.Extra[key]; ok {
		return NewValue(v)
	}
	return Value{}
}

// Map flattens the properties back into their external key/value form.
func (p Properties) Map() map[string]any {
	out := make(map[string]any, len(p.Extra))
	for k, v := range p.Extra {
		out[k] = v
	}
	for key, field := range propertyFields {
		if v := *field(&p); v.set {
			out[key] = v.raw
		}
	}
	return out
}

// Len returns the number of declared properties.
func (p Properties) Len() int {
	return len(p.Map())
}

// MarshalJSON implements json.Marshaler with keys in sorted order.
func (p Properties) MarshalJSON() ([]byte, error) {
	m := p.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*p = NewProperties(m)
	return nil
}
