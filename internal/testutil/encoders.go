// encoders.go - Fake barcode encoders and image fixtures for tests
package testutil

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/label-designer/backend/internal/barcode"
)

// PNG returns a solid w x h PNG.
func PNG(w, h int, c color.Color) []byte {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, c), imaging.PNG); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// JPEG returns a solid w x h JPEG.
func JPEG(w, h int, c color.Color) []byte {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, c), imaging.JPEG); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PNGHeader returns a PNG signature and IHDR chunk declaring a w x h 8-bit
// grayscale canvas with no pixel data. Header readers accept it; full
// decoding fails.
func PNGHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth; color type, compression, filter, interlace stay 0

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	crc := crc32.NewIEEE()
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	crc.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc.Sum32())
	return buf.Bytes()
}

// DataURI wraps data as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// StubEncoder implements both barcode encoder interfaces and records every
// payload it is asked to encode.
type StubEncoder struct {
	mu     sync.Mutex
	Image  []byte
	Err    error
	Panic  bool
	Texts  []string
	Levels []barcode.ECLevel
}

// NewStubEncoder returns an encoder that always yields a 10x10 black PNG.
func NewStubEncoder() *StubEncoder {
	return &StubEncoder{Image: PNG(10, 10, color.Black)}
}

func (s *StubEncoder) EncodeLinear(text string) ([]byte, error) {
	return s.encode(text, "")
}

func (s *StubEncoder) Encode2D(text string, level barcode.ECLevel) ([]byte, error) {
	return s.encode(text, level)
}

func (s *StubEncoder) encode(text string, level barcode.ECLevel) ([]byte, error) {
	s.mu.Lock()
	s.Texts = append(s.Texts, text)
	if level != "" {
		s.Levels = append(s.Levels, level)
	}
	s.mu.Unlock()

	if s.Panic {
		panic("stub encoder panic")
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Image, nil
}
