// Package daemon hosts the long-running catalog service: it owns the loaded
// catalog, the publish ledger, and the HTTP API, and enforces single-instance
// execution through a lock file. The control socket and the HTTP surface both
// call through the Daemon methods so behavior cannot drift between them.
package daemon
