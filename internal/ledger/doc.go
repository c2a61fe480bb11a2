// Package ledger persists per-title publish state behind a narrow key-value
// interface so the storage mechanism stays swappable.
//
// Two backends exist: a flat JSON file (the default, matching the data files
// the catalog ships with) and a SQLite table. Both overwrite whole records on
// every mutation and consult durable state fresh on every read, so a write is
// always visible to the immediately following read.
package ledger
