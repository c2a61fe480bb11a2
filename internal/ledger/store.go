package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"slate/internal/config"
)

// Store is the narrow persistence interface for publish records. Implementations
// must serialize writes and must make every Put visible to the very next Get;
// no cached state may outlive a mutation.
type Store interface {
	// Get returns the record for a title. The second result reports whether a
	// record exists; absence is the implicit unpublished state, not an error.
	Get(ctx context.Context, titleID string) (Record, bool, error)
	// Put overwrites the full record for a title.
	Put(ctx context.Context, titleID string, record Record) error
	// All returns every persisted record keyed by title identifier.
	All(ctx context.Context) (map[string]Record, error)
	Close() error
}

// Open constructs the ledger store selected by configuration.
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Ledger.Backend {
	case "sqlite":
		return OpenSQLite(cfg.Ledger.Path, logger)
	case "file":
		return OpenFile(cfg.Ledger.Path, logger)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}
