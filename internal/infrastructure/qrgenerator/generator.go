package qrgenerator

import (
	qr "github.com/skip2/go-qrcode"
)

type Generator struct {
	size int
}

func NewGenerator(size int) *Generator {
	return &Generator{size: size}
}

// Generate renders the given URL as a PNG QR code. The payer scans it to open
// the processor's redirect page on another device.
func (g *Generator) Generate(url string) ([]byte, error) {
	return qr.Encode(url, qr.Medium, g.size)
}
