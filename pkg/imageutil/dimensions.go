// Package imageutil inspects and normalises uploaded images.
package imageutil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sangkips/quotedesk-api/pkg/apperror"
)

var (
	ErrUnknownFormat = errors.New("unsupported image format")
	ErrTruncated     = errors.New("image header is truncated")
)

// Format names an image container
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatWebP Format = "webp"
)

// MimeType returns the content type browsers expect for f
func (f Format) MimeType() string {
	return "image/" + string(f)
}

// Info is what the header says about an image
type Info struct {
	Format Format
	Width  int
	Height int
}

var (
	pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	gif87        = []byte("GIF87a")
	gif89        = []byte("GIF89a")
)

// Inspect reads the pixel dimensions from the file header without decoding
// the image data. PNG, JPEG, GIF and WebP are recognised.
func Inspect(data []byte) (*Info, error) {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return inspectPNG(data)
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return inspectJPEG(data)
	case bytes.HasPrefix(data, gif87), bytes.HasPrefix(data, gif89):
		return inspectGIF(data)
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return inspectWebP(data)
	}
	return nil, ErrUnknownFormat
}

func inspectPNG(data []byte) (*Info, error) {
	// signature, chunk length, "IHDR", width, height
	if len(data) < 24 || string(data[12:16]) != "IHDR" {
		return nil, ErrTruncated
	}
	return &Info{
		Format: FormatPNG,
		Width:  int(binary.BigEndian.Uint32(data[16:20])),
		Height: int(binary.BigEndian.Uint32(data[20:24])),
	}, nil
}

func inspectGIF(data []byte) (*Info, error) {
	if len(data) < 10 {
		return nil, ErrTruncated
	}
	return &Info{
		Format: FormatGIF,
		Width:  int(binary.LittleEndian.Uint16(data[6:8])),
		Height: int(binary.LittleEndian.Uint16(data[8:10])),
	}, nil
}

func inspectJPEG(data []byte) (*Info, error) {
	i := 2
	for i < len(data) {
		if data[i] != 0xFF {
			return nil, ErrTruncated
		}
		// skip fill bytes
		for i < len(data) && data[i] == 0xFF {
			i++
		}
		if i >= len(data) {
			break
		}
		marker := data[i]
		i++

		// markers without a length field
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD9) {
			continue
		}
		if i+2 > len(data) {
			break
		}
		length := int(binary.BigEndian.Uint16(data[i : i+2]))
		if length < 2 {
			return nil, ErrTruncated
		}

		if isStartOfFrame(marker) {
			if i+7 > len(data) {
				break
			}
			return &Info{
				Format: FormatJPEG,
				Height: int(binary.BigEndian.Uint16(data[i+3 : i+5])),
				Width:  int(binary.BigEndian.Uint16(data[i+5 : i+7])),
			}, nil
		}
		i += length
	}
	return nil, ErrTruncated
}

// isStartOfFrame matches SOF0..SOF15 minus DHT, JPG and DAC
func isStartOfFrame(marker byte) bool {
	if marker < 0xC0 || marker > 0xCF {
		return false
	}
	return marker != 0xC4 && marker != 0xC8 && marker != 0xCC
}

func inspectWebP(data []byte) (*Info, error) {
	if len(data) < 30 {
		return nil, ErrTruncated
	}
	chunk := data[20:]

	switch string(data[12:16]) {
	case "VP8 ":
		// frame tag, then the 9d 01 2a start code
		if chunk[3] != 0x9d || chunk[4] != 0x01 || chunk[5] != 0x2a {
			return nil, ErrTruncated
		}
		return &Info{
			Format: FormatWebP,
			Width:  int(binary.LittleEndian.Uint16(chunk[6:8]) & 0x3fff),
			Height: int(binary.LittleEndian.Uint16(chunk[8:10]) & 0x3fff),
		}, nil
	case "VP8L":
		if chunk[0] != 0x2f {
			return nil, ErrTruncated
		}
		bits := binary.LittleEndian.Uint32(chunk[1:5])
		return &Info{
			Format: FormatWebP,
			Width:  int(bits&0x3fff) + 1,
			Height: int((bits>>14)&0x3fff) + 1,
		}, nil
	case "VP8X":
		return &Info{
			Format: FormatWebP,
			Width:  int(uint24(chunk[4:7])) + 1,
			Height: int(uint24(chunk[7:10])) + 1,
		}, nil
	}
	return nil, ErrUnknownFormat
}

func uint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// CheckMaxDimensions inspects data and rejects images with either side above
// max. The boundary itself is allowed.
func CheckMaxDimensions(data []byte, max int) (*Info, error) {
	info, err := Inspect(data)
	if err != nil {
		if errors.Is(err, ErrUnknownFormat) {
			return nil, apperror.NewBadRequestError("Unsupported image format, use PNG, JPEG, GIF or WebP")
		}
		return nil, apperror.NewBadRequestError("Could not read image dimensions")
	}
	if info.Width > max || info.Height > max {
		return nil, apperror.NewBadRequestError(fmt.Sprintf(
			"Image is %dx%d pixels, the maximum is %dx%d", info.Width, info.Height, max, max))
	}
	return info, nil
}
