// Package reader owns the document being read. A single goroutine running
// Run builds documents, starts image tasks and applies their updates, so
// image states are only ever mutated there.
package reader

import (
	"context"

	"go.uber.org/zap"

	"github.com/dtnitsch/cauldron/models"
	"github.com/dtnitsch/cauldron/pkg/images"
	"github.com/dtnitsch/cauldron/pkg/parser"
)

const (
	inputBuffer = 16
	eventBuffer = 128
)

// Recorder persists terminal image states.
type Recorder interface {
	RecordImageLoad(url string, state models.ImageState) error
}

type Reader struct {
	parser   *parser.Parser
	resolver *images.Resolver
	recorder Recorder
	log      *zap.Logger

	inputs chan Input
	events chan Event

	// owned by Run
	doc       *models.Document
	cancelDoc context.CancelFunc
	docCtx    context.Context
}

// Option configures a Reader.
type Option func(*Reader)

func WithLogger(log *zap.Logger) Option {
	return func(r *Reader) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRecorder stores every terminal image state through rec.
func WithRecorder(rec Recorder) Option {
	return func(r *Reader) { r.recorder = rec }
}

// New creates a reader that builds documents with p and resolves images
// with res. The reader is the only consumer of res.Updates.
func New(p *parser.Parser, res *images.Resolver, opts ...Option) *Reader {
	r := &Reader{
		parser:   p,
		resolver: res,
		log:      zap.NewNop(),
		inputs:   make(chan Input, inputBuffer),
		events:   make(chan Event, eventBuffer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Events returns the notification channel.
func (r *Reader) Events() <-chan Event {
	return r.events
}

// Send queues an input for Run.
func (r *Reader) Send(ctx context.Context, in Input) error {
	select {
	case r.inputs <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes inputs and image updates until ctx is done. In-flight image
// tasks are canceled on return.
func (r *Reader) Run(ctx context.Context) {
	defer r.releaseDocument()
	for {
		select {
		case <-ctx.Done():
			return
		case in := <-r.inputs:
			r.handle(ctx, in)
		case u := <-r.resolver.Updates():
			r.apply(ctx, u)
		}
	}
}

func (r *Reader) handle(ctx context.Context, in Input) {
	switch v := in.(type) {
	case SetTitle:
		r.publish(ctx, TitleChanged{Title: v.Title})
	case SetMetadata:
		r.publish(ctx, MetadataChanged{Article: v.Article})
	case SetContent:
		r.replace(ctx, v)
	case RequestImage:
		r.request(ctx, v.Index)
	}
}

func (r *Reader) replace(ctx context.Context, in SetContent) {
	r.releaseDocument()
	r.doc = r.parser.Build(in.Tree)
	r.docCtx, r.cancelDoc = context.WithCancel(ctx)
	r.log.Debug("Document replaced",
		zap.Stringer("document", r.doc.ID),
		zap.Int("blocks", len(r.doc.Blocks)),
		zap.Int("images", len(r.doc.Images())))
	r.publish(ctx, DocumentReplaced{Document: r.doc})
}

// releaseDocument cancels the image tasks of the current document.
func (r *Reader) releaseDocument() {
	if r.cancelDoc != nil {
		r.cancelDoc()
		r.cancelDoc = nil
	}
}

func (r *Reader) request(ctx context.Context, index int) {
	if r.doc == nil {
		r.log.Debug("Image requested with no document", zap.Int("image", index))
		return
	}
	img := r.doc.Image(index)
	if img == nil {
		r.log.Debug("Image index out of range", zap.Int("image", index))
		return
	}
	if img.URL == "" || img.State.Kind != models.ImageNotRequested {
		return
	}

	img.State = models.RequestedState()
	r.publish(ctx, ImageChanged{DocumentID: r.doc.ID, Index: index, URL: img.URL, State: img.State})
	r.resolver.Request(r.docCtx, images.Job{DocumentID: r.doc.ID, Index: index, URL: img.URL})
}

func (r *Reader) apply(ctx context.Context, u images.Update) {
	log := r.log.With(zap.Stringer("document", u.DocumentID), zap.Int("image", u.Index))
	if r.doc == nil || u.DocumentID != r.doc.ID {
		log.Debug("Dropping update for replaced document")
		return
	}
	img := r.doc.Image(u.Index)
	if img == nil {
		log.Debug("Dropping update for unknown image")
		return
	}
	if !models.CanTransition(img.State.Kind, u.State.Kind) {
		log.Debug("Dropping out of order update",
			zap.Stringer("from", img.State.Kind), zap.Stringer("to", u.State.Kind))
		return
	}

	img.State = u.State
	r.publish(ctx, ImageChanged{DocumentID: u.DocumentID, Index: u.Index, URL: img.URL, State: img.State})

	if u.State.Kind.Terminal() && r.recorder != nil {
		if err := r.recorder.RecordImageLoad(img.URL, img.State); err != nil {
			log.Warn("Unable to record image load", zap.Error(err))
		}
	}
}

func (r *Reader) publish(ctx context.Context, e Event) {
	select {
	case r.events <- e:
	case <-ctx.Done():
	}
}
