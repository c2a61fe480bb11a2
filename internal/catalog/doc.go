// Package catalog defines the immutable media title records and the in-memory
// store that serves them.
//
// The catalog is loaded once at startup from flat JSON files and never mutates
// afterwards; publish state is deliberately kept out of these records and
// joined from the ledger at read time. Opportunities are indexed by title so
// visibility-gated cross-references stay cheap.
package catalog
