package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf
}

func TestRenditionAcceptsPNGUploads(t *testing.T) {
	p := NewPhotoProcessor()

	out, err := p.Rendition(pngBytes(t, 64, 48))
	require.NoError(t, err)

	data, err := io.ReadAll(out)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestThumbnailFitsBounds(t *testing.T) {
	p := NewPhotoProcessor()

	out, err := p.Thumbnail(pngBytes(t, 800, 600), 400, 300)
	require.NoError(t, err)

	data, err := io.ReadAll(out)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 400)
	assert.LessOrEqual(t, img.Bounds().Dy(), 300)
}

func TestRenditionRejectsNonImageContent(t *testing.T) {
	p := NewPhotoProcessor()

	_, err := p.Rendition(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
