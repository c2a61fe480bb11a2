package config

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	APIToken string `toml:"api_token"`
}

// Catalog contains configuration for the static catalog data files.
type Catalog struct {
	TitlesPath        string `toml:"titles_path"`        // Default: <data_dir>/titles.json
	OpportunitiesPath string `toml:"opportunities_path"` // Default: <data_dir>/opportunities.json
	HeroFallback      string `toml:"hero_fallback"`
}

// Ledger contains configuration for publish-state persistence.
type Ledger struct {
	Backend string `toml:"backend"` // "file" or "sqlite"
	Path    string `toml:"path"`    // Default: <data_dir>/published.json (file) or publish.db (sqlite)
}

// Publishing contains configuration for the external sales site integration.
type Publishing struct {
	SalesBaseURL string `toml:"sales_base_url"`
}

// Policy selects the fallback role applied to unknown requesters.
type Policy struct {
	DefaultRole string `toml:"default_role"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Role declares a requester role and its capability set.
type Role struct {
	Name              string `toml:"name"`
	Description       string `toml:"description"`
	ShowInvestment    bool   `toml:"show_investment"`
	ShowSensitive     bool   `toml:"show_sensitive"`
	ShowOpportunities bool   `toml:"show_opportunities"`
	CanPublish        bool   `toml:"can_publish"`
}

// Config encapsulates all configuration values for Slate.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories, API bind address and token
//   - Catalog: title and opportunity data file locations, hero fallback image
//   - Ledger: publish-state storage backend and location
//   - Publishing: sales site URL construction
//   - Policy: default role for unknown requesters
//   - Roles: the role table with per-role capability sets
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Catalog    Catalog    `toml:"catalog"`
	Ledger     Ledger     `toml:"ledger"`
	Publishing Publishing `toml:"publishing"`
	Policy     Policy     `toml:"policy"`
	Logging    Logging    `toml:"logging"`
	Roles      []Role     `toml:"roles"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/slate/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. A missing
// file is not an error; defaults apply. The second return value is the resolved
// config path and the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// TOML array tables append to pre-populated slices; the default role
		// table must not survive alongside a user-provided one.
		cfg.Roles = nil

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	candidate := strings.TrimSpace(path)
	if candidate == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		candidate = defaultPath
	}

	expanded, err := expandPath(candidate)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(expanded)
	switch {
	case err == nil:
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	case os.IsNotExist(err):
		return expanded, false, nil
	default:
		return "", false, fmt.Errorf("stat config: %w", err)
	}
}

// EnsureDirectories creates the directories the daemon writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			trimmed = home
		} else if strings.HasPrefix(trimmed, "~/") {
			trimmed = filepath.Join(home, trimmed[2:])
		}
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// ExpandPath resolves ~ prefixes and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to the given path,
// replacing any existing file. Callers decide whether overwriting is allowed.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), fs.FileMode(0o644)); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
