package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"communityevents/internal/domain"
)

// DefaultSize is the rendered PNG edge length in pixels.
const DefaultSize = 256

type generator struct{}

// NewGenerator returns a QRImageEncoder backed by go-qrcode.
func NewGenerator() domain.QRImageEncoder {
	return &generator{}
}

func (g *generator) EncodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
