package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/cauldron/models"
)

const articlePage = `<!doctype html>
<html><head><title>Test Article</title>
<meta name="author" content="Jane Writer">
</head><body>
<nav><a href="/">Home</a></nav>
<article>
<h1>Test Article</h1>
<p>This is the first paragraph of a longer article body. It carries enough words to look like real prose so the extractor keeps it.</p>
<p>The second paragraph continues the story with <b>bold</b> and <em>emphasised</em> words, and some more filler text to be safe.</p>
<p>A third paragraph rounds things off with yet more content, because readability scores blocks by their amount of text.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage))
	})
	mux.HandleFunc("/ua", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.UserAgent()))
	})
	mux.HandleFunc("/big", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetBytes(t *testing.T) {
	srv := newTestServer(t)
	f := NewFetcher(models.FetchConfig{UserAgent: "cauldron-test", MaxBodyBytes: 32})

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr error
	}{
		{name: "user agent sent", url: srv.URL + "/ua", want: "cauldron-test"},
		{name: "not found", url: srv.URL + "/missing", wantErr: ErrStatus},
		{name: "body limit", url: srv.URL + "/big", wantErr: ErrTooLarge},
		{name: "empty url", url: "  ", wantErr: ErrEmptyURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.GetBytes(context.Background(), tt.url)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetBytes() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetBytes() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("GetBytes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetBytes_Canceled(t *testing.T) {
	srv := newTestServer(t)
	f := NewFetcher(models.FetchConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := f.GetBytes(ctx, srv.URL+"/slow"); err == nil {
		t.Fatal("GetBytes() succeeded after the context expired")
	}
	if ctx.Err() == nil {
		t.Error("context not done after failed fetch")
	}
}

func TestFetchArticle(t *testing.T) {
	srv := newTestServer(t)
	f := NewFetcher(models.FetchConfig{}).WithClient(srv.Client())

	a, err := f.FetchArticle(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("FetchArticle() error = %v", err)
	}
	if a.Title != "Test Article" {
		t.Errorf("Title = %q, want %q", a.Title, "Test Article")
	}
	if !strings.Contains(a.Content, "first paragraph") {
		t.Errorf("Content missing article text: %q", a.Content)
	}
	if meta := a.Meta(); meta.URL != srv.URL+"/article" || meta.DisplayTitle() != "Test Article" {
		t.Errorf("Meta() = %+v", meta)
	}
}

func TestExtractArticle(t *testing.T) {
	a, err := ExtractArticle("https://example.com/post", []byte(articlePage))
	if err != nil {
		t.Fatalf("ExtractArticle() error = %v", err)
	}
	if a.Title != "Test Article" {
		t.Errorf("Title = %q, want %q", a.Title, "Test Article")
	}
	if !strings.Contains(a.Content, "third paragraph") {
		t.Errorf("Content missing article text: %q", a.Content)
	}

	if _, err := ExtractArticle("://bad", []byte(articlePage)); err == nil {
		t.Error("ExtractArticle() with bad url returned nil error")
	}
}

func TestWithClient_KeepsSettings(t *testing.T) {
	srv := newTestServer(t)
	base := NewFetcher(models.FetchConfig{UserAgent: "cauldron-client"})
	f := base.WithClient(srv.Client())
	if f == base {
		t.Fatal("WithClient() returned the receiver, want a copy")
	}

	body, err := f.GetBytes(context.Background(), srv.URL+"/ua")
	if err != nil {
		t.Fatalf("GetBytes() error = %v", err)
	}
	if string(body) != "cauldron-client" {
		t.Errorf("User-Agent = %q, want %q", body, "cauldron-client")
	}
}
