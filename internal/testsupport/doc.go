// Package testsupport provides shared helpers for tests: temp-dir configs and
// a small catalog fixture set with predictable sort and filter behavior.
package testsupport
