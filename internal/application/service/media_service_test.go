package service_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/pkg/imageutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestUploadBrandImage(t *testing.T) {
	s := newSuite(t)

	first, err := s.images.UploadBrandImage(s.acme.Ctx, "rooftop.png", pngBytes(t, 500, 500))
	require.NoError(t, err)
	assert.Equal(t, "image/png", first.MimeType)
	assert.Equal(t, 500, first.Width)
	assert.Equal(t, 500, first.Height)
	assert.Equal(t, 1, first.Position)

	second, err := s.images.UploadBrandImage(s.acme.Ctx, "", jpegBytes(t, 320, 240))
	require.NoError(t, err)
	assert.Equal(t, "image.jpeg", second.Name)
	assert.Equal(t, 2, second.Position)

	list, err := s.images.ListBrandImages(s.acme.Ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	others, err := s.images.ListBrandImages(s.globex.Ctx)
	require.NoError(t, err)
	assert.Empty(t, others)

	requireNotFound(t, s.images.DeleteBrandImage(s.globex.Ctx, first.ID))
	require.NoError(t, s.images.DeleteBrandImage(s.acme.Ctx, first.ID))
}

func TestUploadBrandImageRejections(t *testing.T) {
	s := newSuite(t)

	tests := []struct {
		name    string
		data    []byte
		message string
	}{
		{"too wide", pngBytes(t, 501, 100), "501x100"},
		{"too tall", jpegBytes(t, 100, 640), "100x640"},
		{"not an image", []byte("%PDF-1.4 not a picture"), "Unsupported image format"},
		{"empty", nil, "Validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.images.UploadBrandImage(s.acme.Ctx, "x", tt.data)
			appErr := requireStatus(t, err, http.StatusBadRequest)
			assert.Contains(t, appErr.Message, tt.message)
		})
	}

	small := service.NewBrandImageService(nil, 10, 500)
	_, err := small.UploadBrandImage(s.acme.Ctx, "x", pngBytes(t, 8, 8))
	requireStatus(t, err, http.StatusBadRequest)
}

func TestProfileImageUpload(t *testing.T) {
	s := newSuite(t)

	profile, err := s.profiles.UploadImage(s.acme.Ctx, entity.ProfileImageLogo, pngBytes(t, 600, 200))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(profile.Logo, imageutil.PNGDataURIPrefix))
	assert.Empty(t, profile.Signature)

	_, err = s.profiles.UploadImage(s.acme.Ctx, "banner", pngBytes(t, 10, 10))
	requireStatus(t, err, http.StatusBadRequest)
	_, err = s.profiles.UploadImage(s.acme.Ctx, entity.ProfileImageSignature, []byte("garbage"))
	requireStatus(t, err, http.StatusBadRequest)

	updated, err := s.profiles.UpdateProfile(s.acme.Ctx, entity.BusinessProfile{BusinessName: "Acme Solar Pvt Ltd", Logo: ""})
	require.NoError(t, err)
	assert.Equal(t, profile.Logo, updated.Logo)

	stored, err := s.profiles.GetProfile(s.acme.Ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme Solar Pvt Ltd", stored.BusinessName)
	assert.Equal(t, profile.Logo, stored.Logo)

	cleared, err := s.profiles.DeleteImage(s.acme.Ctx, entity.ProfileImageLogo)
	require.NoError(t, err)
	assert.Empty(t, cleared.Logo)

	other, err := s.profiles.GetProfile(s.globex.Ctx)
	require.NoError(t, err)
	assert.Empty(t, other.Logo)
}
