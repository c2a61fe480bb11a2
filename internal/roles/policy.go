package roles

import (
	"errors"
	"fmt"
	"strings"

	"slate/internal/config"
)

// Capabilities is the boolean permission set attached to a role.
type Capabilities struct {
	ShowInvestment    bool
	ShowSensitive     bool
	ShowOpportunities bool
	CanPublish        bool
}

// Definition pairs a role name with its description and capabilities.
type Definition struct {
	Name        string
	Description string
	Capabilities
}

// Policy resolves requester role names against the configured role table.
// Resolution never fails: unknown or empty names collapse to the default role.
type Policy struct {
	defaultRole string
	order       []string
	table       map[string]Definition
}

// NewPolicy builds a policy from the configured role table.
func NewPolicy(cfg *config.Config) (*Policy, error) {
	if cfg == nil {
		return nil, errors.New("role policy requires config")
	}
	if len(cfg.Roles) == 0 {
		return nil, errors.New("role policy requires at least one role")
	}

	policy := &Policy{
		defaultRole: cfg.Policy.DefaultRole,
		order:       make([]string, 0, len(cfg.Roles)),
		table:       make(map[string]Definition, len(cfg.Roles)),
	}
	for _, role := range cfg.Roles {
		name := strings.TrimSpace(role.Name)
		if name == "" {
			return nil, errors.New("role definitions require a name")
		}
		if _, dup := policy.table[name]; dup {
			return nil, fmt.Errorf("duplicate role %q", name)
		}
		policy.order = append(policy.order, name)
		policy.table[name] = Definition{
			Name:        name,
			Description: role.Description,
			Capabilities: Capabilities{
				ShowInvestment:    role.ShowInvestment,
				ShowSensitive:     role.ShowSensitive,
				ShowOpportunities: role.ShowOpportunities,
				CanPublish:        role.CanPublish,
			},
		}
	}

	def, ok := policy.table[policy.defaultRole]
	if !ok {
		return nil, fmt.Errorf("default role %q is not in the role table", policy.defaultRole)
	}
	if def.CanPublish {
		return nil, fmt.Errorf("default role %q must not grant publishing", def.Name)
	}

	return policy, nil
}

// Resolve maps an arbitrary role string to a canonical role name and its
// capability set. Input is trimmed; anything unrecognized maps silently to the
// default role.
func (p *Policy) Resolve(name string) (string, Capabilities) {
	key := strings.TrimSpace(name)
	if def, ok := p.table[key]; ok {
		return def.Name, def.Capabilities
	}
	def := p.table[p.defaultRole]
	return def.Name, def.Capabilities
}

// Definitions returns every role in configuration order.
func (p *Policy) Definitions() []Definition {
	defs := make([]Definition, 0, len(p.order))
	for _, name := range p.order {
		defs = append(defs, p.table[name])
	}
	return defs
}

// Default returns the name of the fallback role.
func (p *Policy) Default() string {
	return p.defaultRole
}
