package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/cauldron/models"
	"github.com/dtnitsch/cauldron/pkg/images"
	"github.com/dtnitsch/cauldron/pkg/markup"
	"github.com/dtnitsch/cauldron/pkg/parser"
)

const page = `<!doctype html>
<html><head><title>Gopher Field Notes</title></head><body>
<article>
<h1>Gopher Field Notes</h1>
<p>Gophers dig long tunnels under meadows and gardens. Field notes from a season of watching them are collected here for anyone curious.</p>
<p>The second paragraph talks about <b>burrows</b>, the <em>soil</em>, and how gophers move through it at surprising speed during spring.</p>
<p>In the final paragraph we describe the tunnels again, because readability likes articles that have plenty of text inside them.</p>
<img src="IMG_SRC">
</article>
</body></html>`

func newApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:   "cauldron",
		Writer: out,
		Commands: []*cli.Command{
			{Name: "render", Flags: Flags(), Action: RenderAction},
		},
	}
}

func writePage(t *testing.T, imgSrc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(strings.Replace(page, "IMG_SRC", imgSrc, 1)), 0644); err != nil {
		t.Fatalf("failed to write page: %v", err)
	}
	return path
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/a.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRenderAction_TextWithImages(t *testing.T) {
	srv := imageServer(t)
	path := writePage(t, srv.URL+"/a.png")

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"cauldron", "render", "--quiet", "--no-history", "--load-images", "--file", path})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"Gopher Field Notes", "Gophers dig long tunnels", "[image 40x20] " + srv.URL + "/a.png"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderAction_JSONAndHistory(t *testing.T) {
	srv := imageServer(t)
	path := writePage(t, srv.URL+"/missing.png")
	dbPath := filepath.Join(t.TempDir(), "history.db")

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"cauldron", "render", "--quiet", "--db", dbPath, "--load-images", "--format", "json", "--file", path})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var decoded struct {
		Article  models.Article `json:"article"`
		Document struct {
			Blocks []models.OutlineBlock `json:"blocks"`
		} `json:"document"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out.String())
	}
	var img *models.OutlineBlock
	for i := range decoded.Document.Blocks {
		if decoded.Document.Blocks[i].Type == "image" {
			img = &decoded.Document.Blocks[i]
		}
	}
	if img == nil || img.State == nil || img.State.Kind != "failed" {
		t.Fatalf("image block = %+v, want a failed image", img)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("history database not created: %v", err)
	}
}

func TestRenderAction_OutDirYAML(t *testing.T) {
	path := writePage(t, "")
	dir := t.TempDir()

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"cauldron", "render", "--quiet", "--no-history", "--format", "yaml", "--out-dir", dir, "--file", path})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout not empty with --out-dir: %q", out.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "gopher-field-notes.yaml"))
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	var decoded map[string]interface{}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not yaml: %v", err)
	}
	if _, ok := decoded["document"]; !ok {
		t.Errorf("yaml output has no document: %s", data)
	}
}

func TestRenderAction_BadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no url", args: []string{"cauldron", "render", "--quiet", "--no-history"}},
		{name: "invalid url", args: []string{"cauldron", "render", "--quiet", "--no-history", "not a url"}},
		{name: "bad format", args: []string{"cauldron", "render", "--quiet", "--format", "pdf", "https://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := newApp(&out).Run(tt.args); err == nil {
				t.Error("Run() succeeded, want an error")
			}
		})
	}
}

func TestSession_SkipsImagesByDefault(t *testing.T) {
	fetched := false
	f := images.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		fetched = true
		return nil, errors.New("unexpected fetch")
	})
	s := &session{
		parser:   parser.New(),
		resolver: images.NewResolver(f, images.NewDecoder()),
		log:      zaptest.NewLogger(t),
	}
	tree := markup.NewTree(markup.Elem("body", nil, markup.Elem("img", map[string]string{"src": "a.png"})))

	res, err := s.run(context.Background(), models.Article{URL: "https://example.com/x"}, tree, false)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if res.Title != "https://example.com/x" {
		t.Errorf("Title = %q, want URL fallback", res.Title)
	}
	if len(res.Document.Images()) != 1 || res.Document.Image(0).State.Kind != models.ImageNotRequested {
		t.Errorf("image state changed without a request")
	}
	if fetched {
		t.Error("image fetched without --load-images")
	}
}
