package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLedger(); err != nil {
		return err
	}
	if err := c.validatePublishing(); err != nil {
		return err
	}
	if err := c.validateRoles(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.APIBind == "" {
		return errors.New("paths.api_bind must be set")
	}
	return nil
}

func (c *Config) validateLedger() error {
	switch c.Ledger.Backend {
	case "file", "sqlite":
		return nil
	default:
		return fmt.Errorf("ledger.backend must be \"file\" or \"sqlite\", got %q", c.Ledger.Backend)
	}
}

func (c *Config) validatePublishing() error {
	if c.Publishing.SalesBaseURL == "" {
		return errors.New("publishing.sales_base_url must be set")
	}
	parsed, err := url.Parse(c.Publishing.SalesBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("publishing.sales_base_url must be an absolute URL, got %q", c.Publishing.SalesBaseURL)
	}
	if c.Catalog.HeroFallback == "" {
		return errors.New("catalog.hero_fallback must be set")
	}
	return nil
}

func (c *Config) validateRoles() error {
	if len(c.Roles) == 0 {
		return errors.New("at least one role must be configured")
	}
	seen := make(map[string]struct{}, len(c.Roles))
	for _, role := range c.Roles {
		if role.Name == "" {
			return errors.New("roles entries require a name")
		}
		if _, dup := seen[role.Name]; dup {
			return fmt.Errorf("duplicate role %q", role.Name)
		}
		seen[role.Name] = struct{}{}
	}
	if c.Policy.DefaultRole == "" {
		return errors.New("policy.default_role must be set")
	}
	def, ok := c.roleByName(c.Policy.DefaultRole)
	if !ok {
		return fmt.Errorf("policy.default_role %q is not a configured role", c.Policy.DefaultRole)
	}
	// Unknown requesters collapse to the default role, so it must never be
	// able to mutate publish state.
	if def.CanPublish {
		return fmt.Errorf("policy.default_role %q must not grant can_publish", def.Name)
	}
	return nil
}

func (c *Config) roleByName(name string) (Role, bool) {
	for _, role := range c.Roles {
		if role.Name == name {
			return role, true
		}
	}
	return Role{}, false
}
