package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// normalize expands path fields and fills derived defaults. It runs after the
// TOML decode so user-provided values win over derivations.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	if strings.TrimSpace(c.Catalog.TitlesPath) == "" {
		c.Catalog.TitlesPath = filepath.Join(c.Paths.DataDir, titlesFileName)
	} else if c.Catalog.TitlesPath, err = expandPath(c.Catalog.TitlesPath); err != nil {
		return fmt.Errorf("catalog.titles_path: %w", err)
	}
	if strings.TrimSpace(c.Catalog.OpportunitiesPath) == "" {
		c.Catalog.OpportunitiesPath = filepath.Join(c.Paths.DataDir, oppsFileName)
	} else if c.Catalog.OpportunitiesPath, err = expandPath(c.Catalog.OpportunitiesPath); err != nil {
		return fmt.Errorf("catalog.opportunities_path: %w", err)
	}

	c.Ledger.Backend = strings.ToLower(strings.TrimSpace(c.Ledger.Backend))
	if c.Ledger.Backend == "" {
		c.Ledger.Backend = defaultLedger
	}
	if strings.TrimSpace(c.Ledger.Path) == "" {
		name := ledgerFileName
		if c.Ledger.Backend == "sqlite" {
			name = ledgerSQLiteName
		}
		c.Ledger.Path = filepath.Join(c.Paths.DataDir, name)
	} else if c.Ledger.Path, err = expandPath(c.Ledger.Path); err != nil {
		return fmt.Errorf("ledger.path: %w", err)
	}

	c.Publishing.SalesBaseURL = strings.TrimSpace(c.Publishing.SalesBaseURL)
	if c.Publishing.SalesBaseURL != "" && !strings.HasSuffix(c.Publishing.SalesBaseURL, "/") {
		c.Publishing.SalesBaseURL += "/"
	}

	c.Policy.DefaultRole = strings.TrimSpace(c.Policy.DefaultRole)
	if len(c.Roles) == 0 {
		c.Roles = DefaultRoles()
	}
	for i := range c.Roles {
		c.Roles[i].Name = strings.TrimSpace(c.Roles[i].Name)
	}

	return nil
}
