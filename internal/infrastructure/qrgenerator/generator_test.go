package qrgenerator_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudzaim/paynow-relay/internal/infrastructure/qrgenerator"
)

func TestGenerate_ProducesPNGOfRequestedSize(t *testing.T) {
	gen := qrgenerator.NewGenerator(256)

	data, err := gen.Generate("https://paynow.test/pay/abc")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestGenerate_OversizedContentFails(t *testing.T) {
	gen := qrgenerator.NewGenerator(128)

	// QR codes cap out below 3KB of content.
	_, err := gen.Generate(strings.Repeat("a", 4000))
	assert.Error(t, err)
}
