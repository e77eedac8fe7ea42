package imageutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"
)

// PNGDataURIPrefix starts every data URI produced by SquareDataURI
const PNGDataURIPrefix = "data:image/png;base64,"

// SquarePNG fits the image in data into a size x size white canvas, centred
// and without cropping, and returns it PNG encoded.
func SquarePNG(data []byte, size int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	fitted := imaging.Fit(img, size, size, imaging.Lanczos)
	canvas := imaging.New(size, size, color.White)
	canvas = imaging.PasteCenter(canvas, fitted)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// SquareDataURI is SquarePNG wrapped in a data URI
func SquareDataURI(data []byte, size int) (string, error) {
	out, err := SquarePNG(data, size)
	if err != nil {
		return "", err
	}
	return PNGDataURIPrefix + base64.StdEncoding.EncodeToString(out), nil
}
