// Package storage writes rendered output to disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
)

type Storage struct {
	dir string
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// New returns a Storage rooted at dir, creating it if needed.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// FileName derives a stable file name from a title, falling back to the URL
// when the title has no usable characters.
func FileName(title, rawURL, ext string) string {
	name := slug.Make(title)
	if name == "" {
		name = slug.Make(rawURL)
	}
	if name == "" {
		name = "document"
	}
	return name + "." + ext
}

// Path returns the full path of name inside the storage directory.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Storage) SaveFile(name string, content []byte) (string, error) {
	path := s.Path(name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}
	return path, nil
}

func (s *Storage) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

func (s *Storage) HasFile(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// GetFileStats returns metadata about a file using os.Stat.
func (s *Storage) GetFileStats(name string) (*FileStats, error) {
	info, err := os.Stat(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
