// Package publish implements the two-state publish lifecycle for catalog
// titles: Unpublished (the implicit state when no ledger record exists) and
// Published.
//
// Both transitions require the publish capability and an existing title, in
// that order, and rewrite the full ledger record. The sales URL is derived
// deterministically from the title's display name.
package publish
