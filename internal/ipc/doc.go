// Package ipc carries the control channel between the slate CLI and the
// daemon: JSON-RPC over a Unix domain socket. The payload types alias the api
// package so socket and HTTP clients observe identical shapes.
package ipc
