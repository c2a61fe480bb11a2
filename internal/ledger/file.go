package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"slate/internal/logging"
)

// FileStore persists publish records as a single JSON object keyed by title
// identifier. Every read loads the file fresh and every write rewrites it
// whole, so the file is always the sole source of truth.
type FileStore struct {
	path   string
	logger *slog.Logger

	// mu serializes read-modify-write cycles within the process; lock extends
	// the same guarantee across processes sharing the ledger file.
	mu   sync.Mutex
	lock *flock.Flock
}

// OpenFile creates a file-backed ledger store at the given path. The file is
// created lazily on first Put; a missing file reads as an empty ledger.
func OpenFile(path string, logger *slog.Logger) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("file ledger requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}
	return &FileStore{
		path:   path,
		logger: logging.NewComponentLogger(logger, "ledger"),
		lock:   flock.New(path + ".lock"),
	}, nil
}

// Get reads the ledger and returns the record for the title, if any.
func (s *FileStore) Get(_ context.Context, titleID string) (Record, bool, error) {
	records, err := s.load()
	if err != nil {
		return Record{}, false, err
	}
	record, ok := records[titleID]
	return record, ok, nil
}

// Put overwrites the record for a title under the ledger write lock.
func (s *FileStore) Put(ctx context.Context, titleID string, record Record) error {
	if strings.TrimSpace(titleID) == "" {
		return errors.New("title id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire ledger lock: %w", err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("release ledger lock failed", logging.Error(err))
		}
	}()

	records, err := s.load()
	if err != nil {
		return err
	}
	records[titleID] = record
	if err := s.save(records); err != nil {
		return err
	}

	s.logger.Debug("ledger record written",
		logging.String(logging.FieldTitleID, titleID),
		logging.Bool("published", record.Published))
	return nil
}

// All returns every persisted record.
func (s *FileStore) All(_ context.Context) (map[string]Record, error) {
	return s.load()
}

// Close releases the cross-process lock if held.
func (s *FileStore) Close() error {
	return s.lock.Unlock()
}

func (s *FileStore) load() (map[string]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]Record{}, nil
		}
		return nil, fmt.Errorf("read ledger file: %w", err)
	}
	if len(data) == 0 {
		return map[string]Record{}, nil
	}

	records := map[string]Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse ledger file: %w", err)
	}
	return records, nil
}

// save writes the ledger atomically via temp file and rename.
func (s *FileStore) save(records map[string]Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp ledger: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp ledger: %w", err)
	}
	return nil
}
