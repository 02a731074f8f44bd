// Package app contains the core application logic for the cfgforge
// command: loading configuration trees, resolving their references, and
// rendering the result. It is decoupled from any specific entrypoint
// like a CLI or server.
package app
