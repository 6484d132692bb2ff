package binding

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/label-designer/backend/internal/models"
)

func props(m map[string]any) models.Properties {
	return models.NewProperties(m)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{12.5, 12.5, true},
		{float32(2), 2, true},
		{7, 7, true},
		{int64(-3), -3, true},
		{json.Number("18"), 18, true},
		{" 14 ", 14, true},
		{"14pt", 14, true},
		{"9px", 9, true},
		{"1,000", 1000, true},
		{"1_000.5", 1000.5, true},
		{"0x10", 16, true},
		{"0b101", 5, true},
		{"0o17", 15, true},
		{"010", 10, true},
		{"-0x1", -1, true},
		{"", 0, false},
		{"pt", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{math.Inf(1), 0, false},
		{true, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		assert.Equal(t, tt.wantOK, ok, "%#v", tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "%#v", tt.in)
		}
	}
}

func TestFontSize(t *testing.T) {
	assert.Equal(t, 12.0, FontSize(props(nil)))
	assert.Equal(t, 12.0, FontSize(props(map[string]any{"fontSize": "big"})))
	assert.Equal(t, 6.0, FontSize(props(map[string]any{"fontSize": 2})))
	assert.Equal(t, 72.0, FontSize(props(map[string]any{"fontSize": "300"})))
	assert.Equal(t, 20.0, FontSize(props(map[string]any{"fontSize": json.Number("20")})))
}

func TestWidths(t *testing.T) {
	assert.Equal(t, 1.0, BorderWidth(props(nil)))
	assert.Equal(t, 3.0, BorderWidth(props(map[string]any{"strokeWidth": 3})))
	assert.Equal(t, 2.0, BorderWidth(props(map[string]any{"borderWidth": 2, "strokeWidth": 3})))
	assert.Equal(t, 4.0, LineWidth(props(map[string]any{"width": "4", "strokeWidth": 3})))
	assert.Equal(t, 3.0, LineWidth(props(map[string]any{"width": "x", "strokeWidth": 3})))
	assert.Equal(t, 90.0, Rotation(props(map[string]any{"rotation": "90"})))
	assert.Equal(t, 0.0, Rotation(props(nil)))
}

func TestStyleFlags(t *testing.T) {
	assert.True(t, IsBold(props(map[string]any{"fontWeight": " BOLD "})))
	assert.False(t, IsBold(props(map[string]any{"fontWeight": "700"})))
	assert.True(t, IsItalic(props(map[string]any{"fontStyle": "Italic"})))
	assert.False(t, IsItalic(props(nil)))

	assert.Equal(t, AlignLeft, TextAlignment(props(nil)))
	assert.Equal(t, AlignCenter, TextAlignment(props(map[string]any{"textAlign": "center"})))
	assert.Equal(t, AlignRight, TextAlignment(props(map[string]any{"alignment": "right"})))
	assert.Equal(t, AlignCenter, TextAlignment(props(map[string]any{"textAlign": "middle", "alignment": "right"})))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   RGB
		wantOK bool
	}{
		{"#000000", Black, true},
		{"#fff", White, true},
		{"FF0000", RGB{0xFF, 0, 0}, true},
		{"#11223344", RGB{0x22, 0x33, 0x44}, true},
		{"#80FF0000", RGB{0xFF, 0, 0}, true},
		{" Blue ", RGB{0, 0, 0xFF}, true},
		{"#12", RGB{}, false},
		{"#GGGGGG", RGB{}, false},
		{"", RGB{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "#0A0BFF", RGB{0x0A, 0x0B, 0xFF}.Hex())
	assert.True(t, IsWhite("#FFFFFF"))
	assert.True(t, IsWhite("white"))
	assert.False(t, IsWhite("#FFFFFE"))
	assert.True(t, IsTransparent(" None"))
}

func TestColorOrAndPaint(t *testing.T) {
	assert.Equal(t, Black, ColorOr(Black, models.Value{}, models.NewValue("bogus")))
	assert.Equal(t, RGB{0xFF, 0, 0}, ColorOr(Black, models.NewValue(""), models.NewValue("red")))

	assert.Nil(t, Paint(Black, models.NewValue("transparent")))
	assert.Equal(t, &White, Paint(White, models.Value{}))
	assert.Equal(t, &Black, Paint(Black, models.NewValue("not-a-color"), models.NewValue("red")))
	red := RGB{0xFF, 0, 0}
	assert.Equal(t, &red, Paint(Black, models.NewValue(" "), models.NewValue("#f00")))
}

func TestRecord(t *testing.T) {
	src := map[string]string{"B": "2", "A": "1"}
	rec := NewRecord(src)
	src["A"] = "changed"

	v, ok := rec.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	_, ok = rec.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, "def", rec.Get("C", "def"))
	assert.Equal(t, []string{"A", "B"}, rec.Keys())
	assert.Equal(t, 2, rec.Len())
	assert.Equal(t, 0, NewRecord(nil).Len())
}

func TestMissingFields(t *testing.T) {
	data := map[string]string{"A": "", "C": "x"}
	assert.Equal(t, []string{"B", "D"}, MissingFields([]string{"A", "B", "", "C", "B", "D"}, data))
	assert.Nil(t, MissingFields(nil, data))
}

func TestResolveText(t *testing.T) {
	rec := NewRecord(map[string]string{"Name": "Tea", "Empty": ""})

	assert.Equal(t, "Tea", ResolveText(props(map[string]any{"dataField": "Name", "content": "c"}), rec))
	assert.Equal(t, "", ResolveText(props(map[string]any{"dataField": "Empty", "content": "c"}), rec))
	assert.Equal(t, "c", ResolveText(props(map[string]any{"dataField": "Other", "content": "c", "text": "t"}), rec))
	assert.Equal(t, "t", ResolveText(props(map[string]any{"text": "t"}), rec))
	assert.Equal(t, "42", ResolveText(props(map[string]any{"content": json.Number("42")}), rec))
	assert.Equal(t, SampleText, ResolveText(props(nil), rec))
}

func TestResolveCode(t *testing.T) {
	rec := NewRecord(map[string]string{"Code": "ABC", "Empty": ""})

	assert.Equal(t, "ABC", ResolveCode(props(map[string]any{"dataField": "Code", "data": "d"}), rec))
	assert.Equal(t, "d", ResolveCode(props(map[string]any{"dataField": "Empty", "data": "d"}), rec))
	assert.Equal(t, DefaultCode, ResolveCode(props(map[string]any{"data": ""}), rec))
}

func TestResolveImage(t *testing.T) {
	rec := NewRecord(map[string]string{"img1": "FROMID", "Logo": "FROMFIELD"})

	dynamic := models.LayoutElement{ID: "img1", Type: "dynamic-image", Properties: props(map[string]any{
		"dataField": "Logo", "data": "D", "imageData": "I", "src": "S",
	})}
	src, ok := ResolveImage(dynamic, rec)
	assert.True(t, ok)
	assert.Equal(t, ImageSource{Payload: "FROMID", Origin: OriginElementID}, src)

	dynamic.ID = "other"
	src, _ = ResolveImage(dynamic, rec)
	assert.Equal(t, OriginDataField, src.Origin)

	dynamic.Properties = props(map[string]any{"data": "D", "imageData": "I"})
	src, _ = ResolveImage(dynamic, rec)
	assert.Equal(t, ImageSource{Payload: "D", Origin: OriginData}, src)

	static := models.LayoutElement{ID: "img1", Type: "image", Properties: props(map[string]any{"data": "D", "src": "S"})}
	src, ok = ResolveImage(static, rec)
	assert.True(t, ok)
	assert.Equal(t, ImageSource{Payload: "S", Origin: OriginSrc}, src)

	static.Properties = props(map[string]any{"imageData": "", "src": ""})
	_, ok = ResolveImage(static, rec)
	assert.False(t, ok)
}
