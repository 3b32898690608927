package render

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dtnitsch/cauldron/models"
	"github.com/dtnitsch/cauldron/pkg/images"
	"github.com/dtnitsch/cauldron/pkg/markup"
	"github.com/dtnitsch/cauldron/pkg/parser"
	"github.com/dtnitsch/cauldron/pkg/reader"
)

// session drives one reader through building a document and, optionally,
// loading all of its images.
type session struct {
	parser   *parser.Parser
	resolver *images.Resolver
	recorder reader.Recorder
	log      *zap.Logger
}

// result is the document after the reader has stopped. Nothing mutates it
// any more.
type result struct {
	Title    string
	Meta     models.Article
	Document *models.Document
	Loaded   int
	Failed   int
}

func (s *session) run(ctx context.Context, meta models.Article, tree markup.Tree, loadImages bool) (*result, error) {
	opts := []reader.Option{reader.WithLogger(s.log)}
	if s.recorder != nil {
		opts = append(opts, reader.WithRecorder(s.recorder))
	}
	rdr := reader.New(s.parser, s.resolver, opts...)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		rdr.Run(runCtx)
	}()
	defer func() {
		cancel()
		<-done
		s.resolver.Wait()
	}()

	for _, in := range []reader.Input{
		reader.SetTitle{Title: meta.DisplayTitle()},
		reader.SetMetadata{Article: meta},
		reader.SetContent{Tree: tree},
	} {
		if err := rdr.Send(ctx, in); err != nil {
			return nil, fmt.Errorf("failed to send %T: %w", in, err)
		}
	}

	res := &result{}
	pending := -1
	for pending != 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to finish rendering: %w", ctx.Err())
		case e := <-rdr.Events():
			switch v := e.(type) {
			case reader.TitleChanged:
				res.Title = v.Title
			case reader.MetadataChanged:
				res.Meta = v.Article
			case reader.DocumentReplaced:
				res.Document = v.Document
				pending = 0
				if loadImages {
					pending = requestAll(runCtx, rdr, v.Document)
				}
			case reader.ImageChanged:
				switch v.State.Kind {
				case models.ImageSucceeded:
					res.Loaded++
					pending--
				case models.ImageFailed:
					res.Failed++
					pending--
				}
			}
		}
	}
	return res, nil
}

// requestAll asks for every image that has a URL and returns how many will
// be requested. Requests are sent from a separate goroutine so the caller
// keeps draining events.
func requestAll(ctx context.Context, rdr *reader.Reader, doc *models.Document) int {
	var indexes []int
	for i, img := range doc.Images() {
		if img.URL != "" {
			indexes = append(indexes, i)
		}
	}
	go func() {
		for _, i := range indexes {
			if err := rdr.Send(ctx, reader.RequestImage{Index: i}); err != nil {
				return
			}
		}
	}()
	return len(indexes)
}
