// Package api defines the transport-facing payload types shared by the HTTP
// surface and the control socket, plus converters from the internal domain
// types. Field names here are the wire contract; internal renames must not
// leak through.
package api
