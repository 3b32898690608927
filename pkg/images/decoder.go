package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotImage is returned when the bytes are not a recognized image format.
	ErrNotImage = errors.New("data is not a supported image")
	// ErrEmptyImage is returned when an image decodes to zero pixels.
	ErrEmptyImage = errors.New("image has no pixels")
)

// ImageDecoder decodes GIF, JPEG, PNG, BMP, TIFF and WebP data, applying
// EXIF orientation.
type ImageDecoder struct{}

// NewDecoder returns the default decoder.
func NewDecoder() ImageDecoder { return ImageDecoder{} }

func (ImageDecoder) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrNotImage)
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, kind.Extension)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}
	return img, nil
}
