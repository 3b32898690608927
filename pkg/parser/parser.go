package parser

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/dtnitsch/cauldron/models"
	"github.com/dtnitsch/cauldron/pkg/markup"
)

// Parser turns markup trees into Documents. It performs no I/O and is safe
// for concurrent use.
type Parser struct {
	log         *zap.Logger
	fallThrough bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithFallThrough makes Build try the next locator tier whenever the chosen
// tier produced no blocks.
func WithFallThrough() Option {
	return func(p *Parser) { p.fallThrough = true }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build produces the Document for tree. It never fails: unrecognized or
// malformed content is dropped and an empty Document is a valid result.
func (p *Parser) Build(tree markup.Tree) *models.Document {
	var root markup.Node
	if tree != nil {
		root = tree.Root()
	}

	tier := TierNone
	var candidates []markup.Node
	blocks := []models.Block{}
	if p.fallThrough {
		for _, t := range tierOrder {
			c := Candidates(root, t)
			if len(c) == 0 {
				continue
			}
			tier, candidates, blocks = t, c, classifyAll(c)
			if len(blocks) > 0 {
				break
			}
			p.log.Debug("Locator tier produced no blocks, falling through", zap.Stringer("tier", t), zap.Int("candidates", len(c)))
		}
	} else {
		tier, candidates = Locate(root)
		blocks = classifyAll(candidates)
	}

	doc := models.NewDocument(blocks)
	p.log.Debug("Document built",
		zap.Stringer("document", doc.ID),
		zap.Stringer("tier", tier),
		zap.Int("candidates", len(candidates)),
		zap.Int("blocks", len(blocks)),
		zap.Int("images", len(doc.Images())))
	return doc
}

// ParseHTML parses raw HTML and builds its Document.
func (p *Parser) ParseHTML(r io.Reader) (*models.Document, error) {
	tree, err := markup.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to build document: %w", err)
	}
	return p.Build(tree), nil
}
