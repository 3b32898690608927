package images

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dtnitsch/cauldron/pkg/caching"
)

func TestCachingFetcher(t *testing.T) {
	cache, err := caching.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	calls := 0
	next := FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		calls++
		if url == "bad" {
			return nil, errors.New("boom")
		}
		return []byte("data:" + url), nil
	})
	f := NewCachingFetcher(next, cache, nil)

	for i := 0; i < 3; i++ {
		data, err := f.Fetch(context.Background(), "good")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if string(data) != "data:good" {
			t.Errorf("Fetch() = %q, want %q", data, "data:good")
		}
	}
	if calls != 1 {
		t.Errorf("underlying fetcher called %d times, want 1", calls)
	}

	if _, err := f.Fetch(context.Background(), "bad"); err == nil {
		t.Error("Fetch() swallowed the underlying error")
	}
	if _, ok := cache.Get("bad"); ok {
		t.Error("failed fetch was cached")
	}
}
