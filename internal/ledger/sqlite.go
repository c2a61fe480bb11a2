package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"slate/internal/logging"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS publish_records (
    title_id     TEXT PRIMARY KEY,
    published    INTEGER NOT NULL DEFAULT 0,
    sales_url    TEXT,
    published_at TEXT,
    published_by TEXT
);`

// SQLiteStore persists publish records in a SQLite table. Each Put replaces the
// whole row so record shape stays consistent with the file backend.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// OpenSQLite initializes or connects to the ledger database.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite ledger requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite ledger: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		path:   path,
		logger: logging.NewComponentLogger(logger, "ledger"),
	}, nil
}

// Get returns the record for a title.
func (s *SQLiteStore) Get(ctx context.Context, titleID string) (Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT published, sales_url, published_at, published_by
         FROM publish_records WHERE title_id = ?`, titleID)

	var (
		published   int
		salesURL    sql.NullString
		publishedAt sql.NullString
		publishedBy sql.NullString
	)
	err := row.Scan(&published, &salesURL, &publishedAt, &publishedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("read ledger record: %w", err)
	}

	record := Record{
		Published:   published != 0,
		SalesURL:    salesURL.String,
		PublishedBy: publishedBy.String,
	}
	if publishedAt.Valid && publishedAt.String != "" {
		parsed, parseErr := time.Parse(time.RFC3339Nano, publishedAt.String)
		if parseErr != nil {
			return Record{}, false, fmt.Errorf("parse published_at: %w", parseErr)
		}
		record.PublishedAt = &parsed
	}
	return record, true, nil
}

// Put replaces the full record for a title.
func (s *SQLiteStore) Put(ctx context.Context, titleID string, record Record) error {
	if strings.TrimSpace(titleID) == "" {
		return errors.New("title id cannot be empty")
	}

	var publishedAt any
	if record.PublishedAt != nil {
		publishedAt = record.PublishedAt.UTC().Format(time.RFC3339Nano)
	}
	published := 0
	if record.Published {
		published = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO publish_records
            (title_id, published, sales_url, published_at, published_by)
         VALUES (?, ?, ?, ?, ?)`,
		titleID, published, nullableString(record.SalesURL), publishedAt, nullableString(record.PublishedBy))
	if err != nil {
		return fmt.Errorf("write ledger record: %w", err)
	}

	s.logger.Debug("ledger record written",
		logging.String(logging.FieldTitleID, titleID),
		logging.Bool("published", record.Published))
	return nil
}

// All returns every persisted record keyed by title identifier.
func (s *SQLiteStore) All(ctx context.Context) (map[string]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title_id, published, sales_url, published_at, published_by FROM publish_records`)
	if err != nil {
		return nil, fmt.Errorf("list ledger records: %w", err)
	}
	defer rows.Close()

	records := map[string]Record{}
	for rows.Next() {
		var (
			titleID     string
			published   int
			salesURL    sql.NullString
			publishedAt sql.NullString
			publishedBy sql.NullString
		)
		if err := rows.Scan(&titleID, &published, &salesURL, &publishedAt, &publishedBy); err != nil {
			return nil, fmt.Errorf("scan ledger record: %w", err)
		}
		record := Record{
			Published:   published != 0,
			SalesURL:    salesURL.String,
			PublishedBy: publishedBy.String,
		}
		if publishedAt.Valid && publishedAt.String != "" {
			parsed, parseErr := time.Parse(time.RFC3339Nano, publishedAt.String)
			if parseErr != nil {
				return nil, fmt.Errorf("parse published_at: %w", parseErr)
			}
			record.PublishedAt = &parsed
		}
		records[titleID] = record
	}
	return records, rows.Err()
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
