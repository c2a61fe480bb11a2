// Package views builds the role-sanitized projections of catalog titles.
//
// Both view forms are pure functions of (title, capabilities, ledger record):
// no I/O, no clock, no hidden state. The sanitizer never mutates the catalog
// records it reads; sanitized investments are copies.
package views
