package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slate/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatalf("expected missing config file at %s", path)
	}
	if cfg.Ledger.Backend != "file" {
		t.Fatalf("expected file ledger backend, got %q", cfg.Ledger.Backend)
	}
	if cfg.Policy.DefaultRole != "Viewer" {
		t.Fatalf("expected Viewer default role, got %q", cfg.Policy.DefaultRole)
	}
	if len(cfg.Roles) != 4 {
		t.Fatalf("expected default role table, got %d roles", len(cfg.Roles))
	}
	if cfg.Catalog.TitlesPath != filepath.Join(cfg.Paths.DataDir, "titles.json") {
		t.Fatalf("titles path not derived from data dir: %s", cfg.Catalog.TitlesPath)
	}
}

func TestLoadParsesRolesAndDerivesLedgerPath(t *testing.T) {
	dir := t.TempDir()
	content := `
[paths]
data_dir = "` + dir + `/data"
log_dir = "` + dir + `/logs"

[ledger]
backend = "sqlite"

[policy]
default_role = "Guest"

[[roles]]
name = "Editor"
description = "Editors"
show_investment = true
can_publish = true

[[roles]]
name = "Guest"
description = "Guests"
`
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if len(cfg.Roles) != 2 {
		t.Fatalf("expected user role table to replace defaults, got %d roles", len(cfg.Roles))
	}
	if cfg.Roles[0].Name != "Editor" || !cfg.Roles[0].CanPublish {
		t.Fatalf("unexpected first role: %#v", cfg.Roles[0])
	}
	if cfg.Ledger.Path != filepath.Join(dir, "data", "publish.db") {
		t.Fatalf("ledger path not derived for sqlite backend: %s", cfg.Ledger.Path)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "unknown ledger backend",
			mutate:  func(c *config.Config) { c.Ledger.Backend = "redis" },
			wantErr: "ledger.backend",
		},
		{
			name:    "relative sales url",
			mutate:  func(c *config.Config) { c.Publishing.SalesBaseURL = "/titles/" },
			wantErr: "sales_base_url",
		},
		{
			name:    "default role missing from table",
			mutate:  func(c *config.Config) { c.Policy.DefaultRole = "Phantom" },
			wantErr: "default_role",
		},
		{
			name: "default role can publish",
			mutate: func(c *config.Config) {
				c.Policy.DefaultRole = "Admin"
			},
			wantErr: "must not grant can_publish",
		},
		{
			name: "duplicate role names",
			mutate: func(c *config.Config) {
				c.Roles = append(c.Roles, config.Role{Name: "Viewer"})
			},
			wantErr: "duplicate role",
		},
		{
			name:    "empty role table",
			mutate:  func(c *config.Config) { c.Roles = nil },
			wantErr: "at least one role",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadNormalizesSalesBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[publishing]
sales_base_url = "https://sales.example.com/titles"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Publishing.SalesBaseURL != "https://sales.example.com/titles/" {
		t.Fatalf("expected trailing slash, got %q", cfg.Publishing.SalesBaseURL)
	}
}

func TestCreateSampleWritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if len(cfg.Roles) != 4 {
		t.Fatalf("sample config should declare four roles, got %d", len(cfg.Roles))
	}

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample should replace an existing file: %v", err)
	}
}
