package images

import "github.com/dtnitsch/cauldron/models"

// PresentationSize returns the display size of a decoded image. Width never
// exceeds the source width, maxWidth (2048 when unset) or available (when
// positive); height keeps the source aspect ratio.
func PresentationSize(width, height, available, maxWidth int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	if maxWidth <= 0 {
		maxWidth = models.DefaultMaxImageWidth
	}
	w := min(width, maxWidth)
	if available > 0 {
		w = min(w, available)
	}
	h := int(float64(w) * float64(height) / float64(width))
	return w, h
}
