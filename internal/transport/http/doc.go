// Package http implements the HTTP handlers for the reconciliation web
// service: upload-and-run, latest-result lookup, CSV downloads, health
// and Prometheus metrics. Handlers stay thin; parsing and response
// formatting live here, the pipeline itself lives behind the service
// layer. Errors render as RFC 7807 problem+json.
package http
