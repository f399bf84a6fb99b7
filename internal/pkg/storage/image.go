package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// PhotoProcessor normalizes uploaded accommodation photos: oversized
// originals are scaled down to a web rendition and a small thumbnail is
// produced for list views.
type PhotoProcessor struct {
	maxWidth  int
	maxHeight int
}

// NewPhotoProcessor creates a processor with the standard rendition
// bounds for accommodation galleries.
func NewPhotoProcessor() *PhotoProcessor {
	return &PhotoProcessor{maxWidth: 1920, maxHeight: 1280}
}

// Rendition decodes the uploaded image and scales it to fit the gallery
// bounds, re-encoded as JPEG. Images already within bounds are passed
// through the same encode so the stored format is uniform.
func (p *PhotoProcessor) Rendition(content io.Reader) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitted := imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fitted, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf, nil
}

// Thumbnail creates a small JPEG preview bounded by maxWidth x maxHeight.
func (p *PhotoProcessor) Thumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf, nil
}
