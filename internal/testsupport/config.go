package testsupport

import (
	"path/filepath"
	"testing"

	"slate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Catalog.TitlesPath = filepath.Join(cfg.Paths.DataDir, "titles.json")
	cfg.Catalog.OpportunitiesPath = filepath.Join(cfg.Paths.DataDir, "opportunities.json")
	cfg.Ledger.Path = filepath.Join(cfg.Paths.DataDir, "published.json")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithSQLiteLedger switches the test config to the SQLite ledger backend.
func WithSQLiteLedger() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ledger.Backend = "sqlite"
		cfg.Ledger.Path = filepath.Join(cfg.Paths.DataDir, "publish.db")
	}
}

// WithAPIToken sets the bearer token required by the HTTP API.
func WithAPIToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.APIToken = token
	}
}

// WithRoles replaces the role table and default role on the test config.
func WithRoles(defaultRole string, roleTable ...config.Role) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Roles = roleTable
		cfg.Policy.DefaultRole = defaultRole
	}
}
