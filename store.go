package pagedesk

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/eringen/pagedesk/page"
)

// Store wraps a SQLite database holding page records and uploaded image
// metadata. It implements editor.Store.
type Store struct {
	db *sql.DB
}

// Image is the metadata of an uploaded image file.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// URL is the public path the image is served from.
func (i Image) URL() string {
	return "/public/" + uploadsSubdir + "/" + i.Filename
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the public site read while an admin saves.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// SetPage inserts p or replaces the record with the same id. A replaced
// page keeps its position in FindPages.
func (s *Store) SetPage(p page.Page) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode page %s: %w", p.ID, err)
	}
	_, err = s.db.Exec(`INSERT INTO pages (id, type, title, body) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET type = excluded.type, title = excluded.title, body = excluded.body`,
		p.ID, string(p.Type), p.Title, string(body))
	if err != nil {
		return fmt.Errorf("save page %s: %w", p.ID, err)
	}
	return nil
}

// FindPage returns the page with id, or page.ErrNotFound.
func (s *Store) FindPage(id string) (page.Page, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM pages WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return page.Page{}, page.ErrNotFound
	}
	if err != nil {
		return page.Page{}, err
	}
	var p page.Page
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return page.Page{}, fmt.Errorf("decode page %s: %w", id, err)
	}
	return p, nil
}

// FindPages lists every stored page in insertion order.
func (s *Store) FindPages() ([]page.Summary, error) {
	rows, err := s.db.Query(`SELECT id, title, type FROM pages ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []page.Summary{}
	for rows.Next() {
		var sum page.Summary
		var typ string
		if err := rows.Scan(&sum.ID, &sum.Title, &typ); err != nil {
			return nil, err
		}
		sum.Type = page.Type(typ)
		pages = append(pages, sum)
	}
	return pages, rows.Err()
}

// FindPagesByType returns the full records of every page of type t in
// insertion order.
func (s *Store) FindPagesByType(t page.Type) ([]page.Page, error) {
	rows, err := s.db.Query(`SELECT body FROM pages WHERE type = ? ORDER BY rowid`, string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []page.Page
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var p page.Page
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// RemovePage deletes the page with id. Removing a missing page is not an
// error.
func (s *Store) RemovePage(id string) error {
	if _, err := s.db.Exec(`DELETE FROM pages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove page %s: %w", id, err)
	}
	return nil
}

// SaveImage records the metadata of an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether filename is already recorded.
func (s *Store) ImageExists(filename string) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteImage removes the metadata of an uploaded image.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
