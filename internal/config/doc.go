// Package config loads and validates Slate's TOML configuration.
//
// Configuration lives at ~/.config/slate/config.toml by default. Every field
// has a usable default; a missing file yields a fully working configuration.
// The role table is configuration data, not code: roles and their capability
// sets are declared here and consumed by the roles package.
package config
