// Package app wires the web server together: configuration, logging,
// services, handlers, the middleware chain and graceful shutdown.
package app
