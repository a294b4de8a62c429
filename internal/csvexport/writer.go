// Package csvexport writes per-page comparison summaries as CSV.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"

	"pdfcompare/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns is the header row shared by the CSV and XLSX reports.
var Columns = []string{
	"Page",
	"Outcome",
	"Text Added",
	"Text Removed",
	"Images Added",
	"Images Removed",
	"Highlights",
}

// Writer wraps csv.Writer for exporting page summaries.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WritePages writes one row per page summary.
func (w *Writer) WritePages(pages []domain.PageSummary) error {
	for i := range pages {
		if err := w.csv.Write(PageRow(&pages[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// PageRow converts a page summary to a row matching Columns.
func PageRow(p *domain.PageSummary) []string {
	return []string{
		strconv.Itoa(p.Page),
		string(p.Outcome),
		strconv.Itoa(p.TextAdded),
		strconv.Itoa(p.TextRemoved),
		strconv.Itoa(p.ImageAdded),
		strconv.Itoa(p.ImageRemoved),
		strconv.Itoa(p.Highlights()),
	}
}
