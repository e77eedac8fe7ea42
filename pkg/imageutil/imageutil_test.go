package imageutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h, color.Black)))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h, color.Black), nil))
	return buf.Bytes()
}

func encodeGIF(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, solid(w, h, color.Black), nil))
	return buf.Bytes()
}

func webpHeader(fourCC string, chunk []byte) []byte {
	data := []byte("RIFF\x00\x00\x00\x00WEBP")
	data = append(data, fourCC...)
	data = append(data, 0, 0, 0, 0)
	data = append(data, chunk...)
	for len(data) < 40 {
		data = append(data, 0)
	}
	return data
}

func TestInspect(t *testing.T) {
	// VP8X stores width-1 and height-1 as 24 bit little endian
	vp8x := webpHeader("VP8X", []byte{0, 0, 0, 0, 0xF3, 0x01, 0x00, 0xC7, 0x00, 0x00})
	// VP8L packs width-1 and height-1 into 14 bit fields: 99 and 49
	bits := uint32(99) | uint32(49)<<14
	vp8l := webpHeader("VP8L", []byte{0x2f, byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)})
	vp8 := webpHeader("VP8 ", []byte{0, 0, 0, 0x9d, 0x01, 0x2a, 0x40, 0x01, 0xF0, 0x00})

	tests := []struct {
		name   string
		data   []byte
		format Format
		width  int
		height int
	}{
		{"png", encodePNG(t, 120, 80), FormatPNG, 120, 80},
		{"jpeg", encodeJPEG(t, 64, 32), FormatJPEG, 64, 32},
		{"gif", encodeGIF(t, 17, 9), FormatGIF, 17, 9},
		{"webp extended", vp8x, FormatWebP, 500, 200},
		{"webp lossless", vp8l, FormatWebP, 100, 50},
		{"webp lossy", vp8, FormatWebP, 320, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Inspect(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.format, info.Format)
			assert.Equal(t, tt.width, info.Width)
			assert.Equal(t, tt.height, info.Height)
		})
	}
}

func TestInspectRejectsUnknownAndTruncated(t *testing.T) {
	_, err := Inspect([]byte("%PDF-1.7 not an image"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Inspect(encodePNG(t, 10, 10)[:18])
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = Inspect([]byte{0xFF, 0xD8, 0xFF})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestCheckMaxDimensions(t *testing.T) {
	info, err := CheckMaxDimensions(encodePNG(t, 500, 500), 500)
	require.NoError(t, err)
	assert.Equal(t, 500, info.Width)
	assert.Equal(t, "image/png", info.Format.MimeType())

	_, err = CheckMaxDimensions(encodePNG(t, 501, 20), 500)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "501x20")

	_, err = CheckMaxDimensions(encodeJPEG(t, 20, 501), 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "20x501")

	_, err = CheckMaxDimensions([]byte("plain text"), 500)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSquareDataURI(t *testing.T) {
	uri, err := SquareDataURI(encodePNG(t, 600, 200), 300)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, PNGDataURIPrefix))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, PNGDataURIPrefix))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	// the 3:1 source is letterboxed, so the top edge stays white
	r, g, b, _ := img.At(150, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)

	// and the centre carries the black source
	r, _, _, _ = img.At(150, 150).RGBA()
	assert.Less(t, r, uint32(0x1000))
}

func TestSquarePNGRejectsGarbage(t *testing.T) {
	_, err := SquarePNG([]byte("nope"), 300)
	assert.Error(t, err)
}
