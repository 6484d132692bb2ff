package barcode

import (
	"bytes"
	"image"
	_ "image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	return cfg.Width, cfg.Height
}

func TestParseECLevel(t *testing.T) {
	tests := []struct {
		in   string
		def  ECLevel
		want ECLevel
	}{
		{"L", LevelQ, LevelL},
		{"m", LevelQ, LevelM},
		{" h ", LevelQ, LevelH},
		{"Q", LevelL, LevelQ},
		{"", LevelQ, LevelQ},
		{"X", LevelM, LevelM},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseECLevel(tt.in, tt.def))
		})
	}
}

func TestCode128Encoder(t *testing.T) {
	enc := NewCode128Encoder(300, 100, 2)

	t.Run("fixed raster size", func(t *testing.T) {
		png, err := enc.EncodeLinear("123456789")
		require.NoError(t, err)
		w, h := decodeSize(t, png)
		assert.Equal(t, 300, w)
		assert.Equal(t, 100, h)
	})

	t.Run("long payload widens", func(t *testing.T) {
		png, err := enc.EncodeLinear(strings.Repeat("ABCDEFGHIJ", 8))
		require.NoError(t, err)
		w, h := decodeSize(t, png)
		assert.Greater(t, w, 300)
		assert.Equal(t, 100, h)
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := enc.EncodeLinear("SKU-42")
		require.NoError(t, err)
		b, err := enc.EncodeLinear("SKU-42")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := enc.EncodeLinear("")
		assert.ErrorIs(t, err, ErrEmptyPayload)
	})
}

func TestQREncoder(t *testing.T) {
	enc := NewQREncoder(256)

	for _, level := range []ECLevel{LevelL, LevelM, LevelQ, LevelH} {
		t.Run(string(level), func(t *testing.T) {
			png, err := enc.Encode2D("https://example.com/p/1", level)
			require.NoError(t, err)
			w, h := decodeSize(t, png)
			assert.Equal(t, w, h)
			assert.Equal(t, 256, w)
		})
	}

	t.Run("empty payload", func(t *testing.T) {
		_, err := enc.Encode2D("", LevelQ)
		assert.ErrorIs(t, err, ErrEmptyPayload)
	})
}

func TestNewService(t *testing.T) {
	svc := NewService(DefaultOptions())

	var linear LinearEncoder = svc
	var matrix MatrixEncoder = svc

	_, err := linear.EncodeLinear("1")
	assert.NoError(t, err)
	_, err = matrix.Encode2D("1", DefaultLevel)
	assert.NoError(t, err)
}
