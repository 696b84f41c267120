// Package exporter renders reconciliation results as CSV, both to files
// for the batch CLI and to HTTP responses for downloads. Output carries a
// UTF-8 BOM so Excel opens it cleanly.
package exporter
