package models

import "image"

// ImageStateKind is the position of an image in its load lifecycle.
type ImageStateKind int

const (
	ImageNotRequested ImageStateKind = iota
	ImageRequested
	ImageDecoding
	ImageSucceeded
	ImageFailed
)

func (k ImageStateKind) String() string {
	switch k {
	case ImageNotRequested:
		return "not_requested"
	case ImageRequested:
		return "requested"
	case ImageDecoding:
		return "decoding"
	case ImageSucceeded:
		return "succeeded"
	case ImageFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (k ImageStateKind) Terminal() bool {
	return k == ImageSucceeded || k == ImageFailed
}

// ImageState is the load status of one Image block. Width, Height and
// Pixels are set only when Kind is ImageSucceeded; Reason only when
// Kind is ImageFailed.
type ImageState struct {
	Kind   ImageStateKind
	Width  int
	Height int
	Pixels image.Image
	Reason string
}

// NotRequestedState is the state every image starts in.
func NotRequestedState() ImageState { return ImageState{Kind: ImageNotRequested} }

// RequestedState marks an image whose fetch is in flight.
func RequestedState() ImageState { return ImageState{Kind: ImageRequested} }

// DecodingState marks an image whose bytes arrived and are being decoded.
func DecodingState() ImageState { return ImageState{Kind: ImageDecoding} }

// SucceededState carries decoded pixels.
func SucceededState(img image.Image) ImageState {
	b := img.Bounds()
	return ImageState{Kind: ImageSucceeded, Width: b.Dx(), Height: b.Dy(), Pixels: img}
}

// FailedState carries the reason a fetch or decode failed.
func FailedState(reason string) ImageState {
	return ImageState{Kind: ImageFailed, Reason: reason}
}

// CanTransition reports whether an image may move from one state to another.
// States only move forward; Requested may fail directly on transport errors.
func CanTransition(from, to ImageStateKind) bool {
	switch from {
	case ImageNotRequested:
		return to == ImageRequested
	case ImageRequested:
		return to == ImageDecoding || to == ImageFailed
	case ImageDecoding:
		return to == ImageSucceeded || to == ImageFailed
	}
	return false
}
