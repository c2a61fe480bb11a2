// Package discovery answers catalog queries: filtered, sorted, paginated title
// listings and single-title lookups, both projected through the role
// sanitizer. Aggregates describe the filtered set as a whole, not the current
// page.
package discovery
