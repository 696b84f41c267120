package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a fully materialized CSV: a header row plus data rows.
type Document struct {
	Headers []string
	Records [][]string
}

// WriteTo streams the document as BOM-prefixed CSV.
func (d *Document) WriteTo(w io.Writer) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if len(d.Headers) > 0 {
		if err := cw.Write(d.Headers); err != nil {
			return fmt.Errorf("write headers: %w", err)
		}
	}
	for i, record := range d.Records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVWriter writes documents under a base output directory.
type CSVWriter struct {
	outDir string
}

// NewCSVWriter creates a writer rooted at outDir.
func NewCSVWriter(outDir string) *CSVWriter {
	return &CSVWriter{outDir: outDir}
}

// WriteFile writes the document to name inside the output directory,
// creating directories as needed.
func (w *CSVWriter) WriteFile(name string, doc *Document) error {
	fullPath := filepath.Join(w.outDir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", fullPath, err)
	}
	if err := doc.WriteTo(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
