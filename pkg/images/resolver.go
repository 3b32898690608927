// Package images resolves Image blocks: each explicit request runs one
// task that fetches the bytes and then decodes them, reporting progress as
// state updates on a single channel.
package images

import (
	"context"
	"image"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dtnitsch/cauldron/models"
)

// Fetcher retrieves the raw bytes behind an image URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Decoder turns image bytes into pixels.
type Decoder interface {
	Decode(data []byte) (image.Image, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(data []byte) (image.Image, error)

func (f DecoderFunc) Decode(data []byte) (image.Image, error) { return f(data) }

// Job identifies one image of one document.
type Job struct {
	DocumentID uuid.UUID
	Index      int
	URL        string
}

// Update reports a state change for the image identified by DocumentID and
// Index.
type Update struct {
	DocumentID uuid.UUID
	Index      int
	URL        string
	State      models.ImageState
}

const defaultUpdateBuffer = 64

// Resolver runs image tasks. Updates from one task arrive in emission
// order; updates from different tasks interleave arbitrarily.
type Resolver struct {
	fetcher Fetcher
	decoder Decoder
	log     *zap.Logger
	updates chan Update
	sem     chan struct{}
	wg      sync.WaitGroup
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger for task diagnostics.
func WithLogger(log *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMaxConcurrent caps the number of tasks fetching or decoding at once.
// Zero or less means no cap.
func WithMaxConcurrent(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.sem = make(chan struct{}, n)
		} else {
			r.sem = nil
		}
	}
}

// NewResolver creates a Resolver backed by the given fetcher and decoder.
func NewResolver(f Fetcher, d Decoder, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fetcher: f,
		decoder: d,
		log:     zap.NewNop(),
		updates: make(chan Update, defaultUpdateBuffer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Updates is the single channel all tasks report on. It has exactly one
// intended consumer: the owner of the documents.
func (r *Resolver) Updates() <-chan Update {
	return r.updates
}

// Request starts a task for job. The caller is responsible for having moved
// the image into the Requested state. The task stops without further
// updates once ctx is done.
func (r *Resolver) Request(ctx context.Context, job Job) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx, job)
	}()
}

// Wait blocks until every started task has returned.
func (r *Resolver) Wait() {
	r.wg.Wait()
}

func (r *Resolver) run(ctx context.Context, job Job) {
	log := r.log.With(zap.Stringer("document", job.DocumentID), zap.Int("image", job.Index), zap.String("url", job.URL))

	if r.sem != nil {
		select {
		case r.sem <- struct{}{}:
			defer func() { <-r.sem }()
		case <-ctx.Done():
			log.Debug("Image task canceled while queued")
			return
		}
	}

	log.Debug("Fetching image")
	data, err := r.fetcher.Fetch(ctx, job.URL)
	if err != nil {
		if ctx.Err() != nil {
			log.Debug("Image fetch canceled", zap.Error(err))
			return
		}
		log.Warn("Unable to fetch image", zap.Error(err))
		r.emit(ctx, job, models.FailedState(err.Error()))
		return
	}
	log.Debug("Image fetched", zap.String("size", humanize.Bytes(uint64(len(data)))))
	if !r.emit(ctx, job, models.DecodingState()) {
		return
	}

	img, err := r.decoder.Decode(data)
	if err != nil {
		log.Warn("Unable to decode image", zap.Error(err))
		r.emit(ctx, job, models.FailedState(err.Error()))
		return
	}
	state := models.SucceededState(img)
	log.Debug("Image decoded", zap.Int("width", state.Width), zap.Int("height", state.Height))
	r.emit(ctx, job, state)
}

// emit delivers an update unless ctx is done first.
func (r *Resolver) emit(ctx context.Context, job Job, state models.ImageState) bool {
	if ctx.Err() != nil {
		return false
	}
	u := Update{DocumentID: job.DocumentID, Index: job.Index, URL: job.URL, State: state}
	select {
	case r.updates <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
