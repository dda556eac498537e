package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver for database/sql
)

//go:embed schema.sql
var schema string

// SQLSource is a catalog source reading rows of table 'fonts'
// (id, name, file_url). Rows are enumerated in order of their id.
//
// Column file_url holds either an absolute URL or a file name relative to
// BaseURL.
type SQLSource struct {
	DB      *sql.DB
	BaseURL string
}

// OpenDB opens (and possibly creates) a sqlite database holding a fonts table.
func OpenDB(dbpath string) (*sql.DB, error) {
	if dbpath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbpath), 0o755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbpath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if dbpath == ":memory:" {
		db.SetMaxOpenConns(1) // every connection would see a database of its own
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates table 'fonts' if it does not exist.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// AddFont inserts a row into table 'fonts'. Rows with an existing file_url
// are ignored.
func AddFont(ctx context.Context, db *sql.DB, name, fileURL string) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO fonts (name, file_url) VALUES (?, ?)`, name, fileURL)
	if err != nil {
		return fmt.Errorf("insert font %s: %w", name, err)
	}
	return nil
}

// Entries reads all rows of table 'fonts'.
func (src SQLSource) Entries(ctx context.Context) ([]Entry, error) {
	if src.DB == nil {
		return nil, ErrSourceUnavailable
	}
	rows, err := src.DB.QueryContext(ctx, `SELECT name, file_url FROM fonts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query fonts: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var name, fileURL string
		if err := rows.Scan(&name, &fileURL); err != nil {
			return nil, fmt.Errorf("scan fonts: %w", err)
		}
		tracer().Debugf("row font %q = %s", name, fileURL)
		entries = append(entries, Entry{
			Name: path.Base(fileURL),
			URL:  JoinURL(src.BaseURL, fileURL),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fonts: %w", err)
	}
	return entries, nil
}

func (src SQLSource) String() string {
	return "sql:fonts"
}
