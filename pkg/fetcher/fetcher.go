// Package fetcher performs HTTP retrieval of article pages and image bytes.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/dtnitsch/cauldron/models"
)

var (
	// ErrEmptyURL is returned when no URL is given.
	ErrEmptyURL = errors.New("empty url")
	// ErrStatus is returned for any non-200 response.
	ErrStatus = errors.New("unexpected status")
	// ErrTooLarge is returned when a body exceeds the configured limit.
	ErrTooLarge = errors.New("response body too large")
)

type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// NewFetcher builds a fetcher from the fetch section of the config.
func NewFetcher(cfg models.FetchConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = models.DefaultFetchTimeout
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodyBytes,
	}
}

// WithClient replaces the HTTP client, keeping the other settings.
func (f *Fetcher) WithClient(c *http.Client) *Fetcher {
	cp := *f
	cp.client = c
	return &cp
}

// GetBytes fetches rawURL and returns its body. Any status other than 200 is
// an error.
func (f *Fetcher) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, ErrEmptyURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.maxBody > 0 {
		body = io.LimitReader(resp.Body, f.maxBody+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if f.maxBody > 0 && int64(len(data)) > f.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBody)
	}
	return data, nil
}

// Fetch implements images.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f.GetBytes(ctx, rawURL)
}

// Article is the readable part of a page plus its metadata.
type Article struct {
	URL       string
	Title     string
	Byline    string
	Excerpt   string
	SiteName  string
	Published time.Time
	Content   string
}

// FetchArticle downloads rawURL and extracts its main content.
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (*Article, error) {
	data, err := f.GetBytes(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return ExtractArticle(rawURL, data)
}

// ExtractArticle runs readability over an already downloaded page.
func ExtractArticle(rawURL string, page []byte) (*Article, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}

	rp := readability.NewParser()
	parsed, err := rp.Parse(bytes.NewReader(page), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	a := &Article{
		URL:      rawURL,
		Title:    strings.TrimSpace(parsed.Title),
		Byline:   strings.TrimSpace(parsed.Byline),
		Excerpt:  strings.TrimSpace(parsed.Excerpt),
		SiteName: parsed.SiteName,
		Content:  parsed.Content,
	}
	if parsed.PublishedTime != nil {
		a.Published = *parsed.PublishedTime
	}
	return a, nil
}

// Meta converts the article into the catalog entry shown in a header.
func (a *Article) Meta() models.Article {
	m := models.Article{
		Title:       a.Title,
		URL:         a.URL,
		Description: a.Excerpt,
	}
	if !a.Published.IsZero() {
		m.Time = float64(a.Published.Unix())
	}
	return m
}
