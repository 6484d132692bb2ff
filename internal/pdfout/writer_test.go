package pdfout

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/label-designer/backend/internal/binding"
	"github.com/label-designer/backend/internal/compose"
	"github.com/label-designer/backend/internal/render"
	"github.com/label-designer/backend/internal/testutil"
)

func samplePage() *compose.Page {
	png := testutil.PNG(6, 6, color.White)
	img := render.ImageOp{Op: render.OpImage, Box: render.Box{X: 10, Y: 60, W: 30, H: 30}, Key: render.ImageKey(png), Width: 6, Height: 6, PNG: png}
	dup := img
	dup.Box.X = 50

	fill := binding.LightGray
	stroke := binding.Black
	return &compose.Page{
		Width:      400,
		Height:     250,
		Background: &binding.RGB{R: 0xFF, G: 0xEE, B: 0xDD},
		Items: []render.Instruction{
			{ElementID: "r", Ops: []render.Op{render.RectOp{Op: render.OpRect, Box: render.Box{X: 5, Y: 5, W: 100, H: 40}, Fill: &fill, Stroke: &stroke, LineWidth: 1}}},
			{ElementID: "t", Rotation: 90, Ops: []render.Op{render.TextOp{Op: render.OpText, Box: render.Box{X: 10, Y: 10, W: 80, H: 20}, Text: "Price: ₹99.99 – naïve", FontSize: 12, Bold: true, Align: binding.AlignCenter}}},
			{ElementID: "z", Ops: []render.Op{render.TextOp{Op: render.OpText, Box: render.Box{X: 10, Y: 40}, Text: "no width", FontSize: 8}}},
			{ElementID: "m", Ops: []render.Op{render.TextOp{Op: render.OpText, Box: render.Box{X: 0, Y: 0, W: 50, H: 50}, Text: "[Image]", FontSize: 10, Middle: true}}},
			{ElementID: "i1", Ops: []render.Op{img}},
			{ElementID: "i2", Ops: []render.Op{dup}},
			{ElementID: "empty", Ops: []render.Op{render.ImageOp{Op: render.OpImage, Box: render.Box{X: 1, Y: 1}, PNG: png, Key: "x"}}},
		},
	}
}

func TestWriteSinglePage(t *testing.T) {
	out, err := New(Options{}, nil).Bytes(samplePage())
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "%PDF-"))
	assert.Equal(t, 1, strings.Count(s, "/Type /Page\n"))
	assert.Contains(t, s, "/MediaBox [0 0 400.00 250.00]")
	// Identical images are embedded once.
	assert.Equal(t, 1, strings.Count(s, "/Subtype /Image"))
}

func TestWriteDeterministic(t *testing.T) {
	w := New(Options{}, nil)
	a, err := w.Bytes(samplePage())
	require.NoError(t, err)
	b, err := w.Bytes(samplePage())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "same page should produce identical bytes")

	other, err := New(Options{Date: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}, nil).Bytes(samplePage())
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, other))
}

func TestWriteEmptyPage(t *testing.T) {
	out, err := New(Options{}, nil).Bytes(&compose.Page{Width: 300, Height: 200})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestWriteInvalidPage(t *testing.T) {
	_, err := New(Options{}, nil).Bytes(&compose.Page{})
	assert.Error(t, err)
	_, err = New(Options{}, nil).Bytes(nil)
	assert.Error(t, err)
}

func TestWinAnsi(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"₹99", "Rs.99"},
		{"café", "caf\xe9"},
		{"€5", "\x805"},
		{"日本", "??"},
		{"a−b", "a-b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, winAnsi(tt.in))
		})
	}
}

func TestFontStyle(t *testing.T) {
	assert.Equal(t, "", fontStyle(false, false))
	assert.Equal(t, "B", fontStyle(true, false))
	assert.Equal(t, "I", fontStyle(false, true))
	assert.Equal(t, "BI", fontStyle(true, true))
}

func TestWriteBadImageDegradesOnlyItsItem(t *testing.T) {
	good := testutil.PNG(4, 4, color.Black)
	page := &compose.Page{
		Width:  200,
		Height: 100,
		Items: []render.Instruction{
			{ElementID: "bad", Ops: []render.Op{render.ImageOp{Op: render.OpImage, Box: render.Box{X: 5, Y: 5, W: 40, H: 40}, Key: "img-broken", PNG: []byte("not a png")}}},
			{ElementID: "txt", Ops: []render.Op{render.TextOp{Op: render.OpText, Box: render.Box{X: 50, Y: 5, W: 100, H: 20}, Text: "still here", FontSize: 10}}},
			{ElementID: "good", Ops: []render.Op{render.ImageOp{Op: render.OpImage, Box: render.Box{X: 150, Y: 5, W: 40, H: 40}, Key: render.ImageKey(good), PNG: good}}},
		},
	}

	out, err := New(Options{}, nil).Bytes(page)
	require.NoError(t, err)
	s := string(out)
	assert.True(t, strings.HasPrefix(s, "%PDF-"))
	assert.Equal(t, 1, strings.Count(s, "/Type /Page\n"))
	assert.Equal(t, 1, strings.Count(s, "/Subtype /Image"))
}

func TestIsolateImages(t *testing.T) {
	w := New(Options{}, nil)
	box := render.Box{X: 1, Y: 2, W: 30, H: 10}
	bad := render.ImageOp{Op: render.OpImage, Box: box, Key: "img-broken", PNG: []byte{0x89, 'P', 'N', 'G'}}
	line := render.RectOp{Op: render.OpRect, Box: box}

	checked := map[string]error{}
	got := w.isolateImages(render.Instruction{ElementID: "x", Ops: []render.Op{line, bad}}, checked)

	require.Len(t, got.Ops, 3)
	assert.Equal(t, line, got.Ops[0])
	rect, ok := got.Ops[1].(render.RectOp)
	require.True(t, ok)
	assert.Equal(t, box, rect.Box)
	assert.Equal(t, binding.ErrorFill, *rect.Fill)
	text, ok := got.Ops[2].(render.TextOp)
	require.True(t, ok)
	assert.Equal(t, render.CaptionImageError, text.Text)
	assert.Error(t, checked["img-broken"])

	png := testutil.PNG(2, 2, color.White)
	okImg := render.ImageOp{Op: render.OpImage, Box: box, Key: render.ImageKey(png), PNG: png}
	got = w.isolateImages(render.Instruction{Ops: []render.Op{okImg}}, checked)
	assert.Equal(t, []render.Op{okImg}, got.Ops)
	assert.NoError(t, checked[okImg.Key])
}
