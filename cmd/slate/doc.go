// Command slate is the operator CLI for the slate daemon. It talks to slated
// over the Unix control socket and renders catalog listings, title details,
// role directories, and publish receipts.
package main
