package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dtnitsch/cauldron/models"
)

// Render is one recorded document build.
type Render struct {
	URL        string
	DocumentID string
	Title      string
	BlockCount int
	ImageCount int
	Language   string
	CreatedAt  time.Time
}

// ImageLoad is one recorded terminal image state.
type ImageLoad struct {
	URL       string
	State     string
	Reason    string
	Width     int
	Height    int
	CreatedAt time.Time
}

// InsertURL inserts a URL, returning the url_id.
// If the URL already exists, returns the existing url_id.
func (db *DB) InsertURL(rawURL string) (int64, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}

	var existingID int64
	err = db.QueryRow("SELECT url_id FROM urls WHERE original_url = ?", rawURL).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing URL: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO urls (original_url, domain)
		VALUES (?, ?)
	`, rawURL, parsed.Hostname())
	if err != nil {
		return 0, fmt.Errorf("failed to insert URL: %w", err)
	}

	urlID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get URL ID: %w", err)
	}
	return urlID, nil
}

// RecordRender stores the outcome of building a document for rawURL.
func (db *DB) RecordRender(rawURL, title, language string, doc *models.Document) error {
	urlID, err := db.InsertURL(rawURL)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO renders (url_id, document_id, title, block_count, image_count, language)
		VALUES (?, ?, ?, ?, ?, ?)
	`, urlID, doc.ID.String(), title, len(doc.Blocks), len(doc.Images()), language)
	if err != nil {
		return fmt.Errorf("failed to record render: %w", err)
	}
	return nil
}

// RecordImageLoad stores a terminal image state. Non-terminal states are
// ignored.
func (db *DB) RecordImageLoad(imageURL string, state models.ImageState) error {
	if !state.Kind.Terminal() {
		return nil
	}
	urlID, err := db.InsertURL(imageURL)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO image_loads (url_id, state, reason, width, height)
		VALUES (?, ?, ?, ?, ?)
	`, urlID, state.Kind.String(), state.Reason, state.Width, state.Height)
	if err != nil {
		return fmt.Errorf("failed to record image load: %w", err)
	}
	return nil
}

// RecentImageLoads returns up to limit image loads, newest first.
func (db *DB) RecentImageLoads(limit int) ([]ImageLoad, error) {
	rows, err := db.Query(`
		SELECT u.original_url, l.state, COALESCE(l.reason, ''), l.width, l.height, l.created_at
		FROM image_loads l
		JOIN urls u ON u.url_id = l.url_id
		ORDER BY l.load_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query image loads: %w", err)
	}
	defer rows.Close()

	var loads []ImageLoad
	for rows.Next() {
		var l ImageLoad
		if err := rows.Scan(&l.URL, &l.State, &l.Reason, &l.Width, &l.Height, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image load: %w", err)
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

// RecentRenders returns up to limit renders, newest first.
func (db *DB) RecentRenders(limit int) ([]Render, error) {
	rows, err := db.Query(`
		SELECT u.original_url, r.document_id, COALESCE(r.title, ''), r.block_count, r.image_count,
		       COALESCE(r.language, ''), r.created_at
		FROM renders r
		JOIN urls u ON u.url_id = r.url_id
		ORDER BY r.render_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query renders: %w", err)
	}
	defer rows.Close()

	var renders []Render
	for rows.Next() {
		var r Render
		if err := rows.Scan(&r.URL, &r.DocumentID, &r.Title, &r.BlockCount, &r.ImageCount, &r.Language, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan render: %w", err)
		}
		renders = append(renders, r)
	}
	return renders, rows.Err()
}
