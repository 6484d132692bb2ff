package barcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QREncoder renders QR codes as square PNG images.
type QREncoder struct {
	size int
}

// NewQREncoder creates an encoder producing size x size images.
func NewQREncoder(size int) *QREncoder {
	if size <= 0 {
		size = DefaultOptions().QRSize
	}
	return &QREncoder{size: size}
}

// Encode2D implements MatrixEncoder.
func (e *QREncoder) Encode2D(text string, level ECLevel) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyPayload
	}
	q, err := qrcode.New(text, recoveryLevel(level))
	if err != nil {
		return nil, fmt.Errorf("encoding QR: %w", err)
	}
	png, err := q.PNG(e.size)
	if err != nil {
		return nil, fmt.Errorf("writing QR PNG: %w", err)
	}
	return png, nil
}

// recoveryLevel maps L/M/Q/H onto go-qrcode's names (High is Q, Highest is H).
func recoveryLevel(level ECLevel) qrcode.RecoveryLevel {
	switch level {
	case LevelL:
		return qrcode.Low
	case LevelM:
		return qrcode.Medium
	case LevelH:
		return qrcode.Highest
	default:
		return qrcode.High
	}
}
