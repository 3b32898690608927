package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/cauldron/internal/common"
	"github.com/dtnitsch/cauldron/models"
	"github.com/dtnitsch/cauldron/pkg/analytics"
	"github.com/dtnitsch/cauldron/pkg/caching"
	"github.com/dtnitsch/cauldron/pkg/db"
	"github.com/dtnitsch/cauldron/pkg/fetcher"
	"github.com/dtnitsch/cauldron/pkg/images"
	"github.com/dtnitsch/cauldron/pkg/markup"
	"github.com/dtnitsch/cauldron/pkg/parser"
	renderpkg "github.com/dtnitsch/cauldron/pkg/render"
	"github.com/dtnitsch/cauldron/pkg/storage"
)

// Output is the structured form written for --format yaml|json.
type Output struct {
	Article     models.Article   `json:"article" yaml:"article"`
	Domain      string           `json:"domain,omitempty" yaml:"domain,omitempty"`
	Date        string           `json:"date" yaml:"date"`
	ReadingTime string           `json:"reading_time" yaml:"reading_time"`
	Language    string           `json:"language,omitempty" yaml:"language,omitempty"`
	Keywords    []string         `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Document    *models.Document `json:"document" yaml:"document"`
}

func RenderAction(c *cli.Context) (err error) {
	format := strings.ToLower(c.String("format"))
	if format != "text" && format != "yaml" && format != "json" {
		return fmt.Errorf("unknown format %q: want text, yaml or json", format)
	}

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	log, err := common.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	f := fetcher.NewFetcher(cfg.Fetch)
	article, err := loadArticle(c.Context, c, f)
	if err != nil {
		return err
	}
	log.Info("Article extracted",
		zap.String("url", article.URL),
		zap.String("title", article.Title),
		zap.String("size", humanize.Bytes(uint64(len(article.Content)))))

	tree, err := markup.ParseString(article.Content)
	if err != nil {
		return fmt.Errorf("failed to parse article markup: %w", err)
	}

	var imageFetcher images.Fetcher = f
	if cfg.Images.CacheDir != "" {
		cache, err := caching.NewCache(cfg.Images.CacheDir, cfg.Images.CacheTTL)
		if err != nil {
			return err
		}
		if n, err := cache.Prune(); err != nil {
			log.Warn("Unable to prune image cache", zap.Error(err))
		} else if n > 0 {
			log.Debug("Pruned image cache", zap.Int("removed", n))
		}
		imageFetcher = images.NewCachingFetcher(f, cache, log)
	}

	var history *db.DB
	if !c.Bool("no-history") {
		history, err = db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { err = multierr.Append(err, history.Close()) }()
	}

	parserOpts := []parser.Option{parser.WithLogger(log)}
	if cfg.Render.FallThroughEmptyTiers {
		parserOpts = append(parserOpts, parser.WithFallThrough())
	}
	s := &session{
		parser: parser.New(parserOpts...),
		resolver: images.NewResolver(imageFetcher, images.NewDecoder(),
			images.WithLogger(log), images.WithMaxConcurrent(cfg.Images.MaxConcurrent)),
		log: log,
	}
	if history != nil {
		s.recorder = history
	}

	res, err := s.run(c.Context, article.Meta(), tree, c.Bool("load-images"))
	if err != nil {
		return err
	}
	log.Info("Document built",
		zap.Int("blocks", len(res.Document.Blocks)),
		zap.Int("images", len(res.Document.Images())),
		zap.Int("loaded", res.Loaded),
		zap.Int("failed", res.Failed))

	header := renderpkg.NewHeader(res.Meta, res.Document, time.Now())
	if c.Bool("detect-language") {
		header.Language = analytics.NewLanguageDetector().Detect(res.Document.ToPlainText())
	}

	if history != nil {
		if err := history.RecordRender(article.URL, res.Title, header.Language, res.Document); err != nil {
			log.Warn("Unable to record render", zap.Error(err))
		}
	}

	return writeOutput(c, cfg, format, res, header, log)
}

func loadArticle(ctx context.Context, c *cli.Context, f *fetcher.Fetcher) (*fetcher.Article, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		base := c.String("base-url")
		if base == "" {
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
			}
			base = "file://" + filepath.ToSlash(abs)
		}
		return fetcher.ExtractArticle(base, data)
	}

	if c.NArg() == 0 {
		return nil, fmt.Errorf("%w: pass a URL or --file", fetcher.ErrEmptyURL)
	}
	valid, invalid := common.SanitizeAndValidateURLs([]string{c.Args().First()})
	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid url: %s", invalid[0])
	}
	return f.FetchArticle(ctx, valid[0])
}

func writeOutput(c *cli.Context, cfg *models.Config, format string, res *result, header renderpkg.Header, log *zap.Logger) error {
	var w io.Writer = c.App.Writer
	if dir := c.String("out-dir"); dir != "" {
		st, err := storage.New(dir)
		if err != nil {
			return err
		}
		name := storage.FileName(res.Meta.Title, res.Meta.URL, map[string]string{"text": "txt", "yaml": "yaml", "json": "json"}[format])
		if st.HasFile(name) {
			log.Debug("Overwriting output", zap.String("path", st.Path(name)))
		}
		var sb strings.Builder
		if err := encode(&sb, cfg, format, res, header); err != nil {
			return err
		}
		path, err := st.SaveFile(name, []byte(sb.String()))
		if err != nil {
			return err
		}
		stats, err := st.GetFileStats(name)
		if err != nil {
			return err
		}
		log.Info("Output written", zap.String("path", path), zap.String("size", humanize.Bytes(uint64(stats.SizeBytes))))
		return nil
	}
	return encode(w, cfg, format, res, header)
}

func encode(w io.Writer, cfg *models.Config, format string, res *result, header renderpkg.Header) error {
	switch format {
	case "text":
		return renderpkg.NewSurface(cfg.Display).Write(w, header, res.Document)
	}

	out := Output{
		Article:     res.Meta,
		Domain:      header.Domain,
		Date:        header.Date,
		ReadingTime: header.ReadingTime,
		Language:    header.Language,
		Keywords:    header.Keywords,
		Document:    res.Document,
	}
	if format == "json" {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	return enc.Close()
}
