// Package roles implements the role policy: the static table mapping role
// names to capability sets.
//
// The table is immutable configuration data. Resolution is total: any input,
// however malformed, yields a valid role, with unknown names collapsing to the
// configured default role so the read path never fails on a bad role string.
package roles
