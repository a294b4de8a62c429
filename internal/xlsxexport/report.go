// Package xlsxexport renders a comparison's per-page differences as an
// Excel workbook.
package xlsxexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"pdfcompare/internal/compare"
	"pdfcompare/internal/csvexport"
	"pdfcompare/internal/domain"
)

const (
	PagesSheet   = "Pages"
	SummarySheet = "Summary"
)

// Write renders the workbook for c with one row per logical page and a
// totals row, followed by a summary sheet.
func Write(w io.Writer, c *domain.Comparison, pages []domain.PageSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PagesSheet); err != nil {
		return fmt.Errorf("xlsxexport.Write: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsxexport.Write: %w", err)
	}

	if err := writePages(f, pages, bold); err != nil {
		return fmt.Errorf("xlsxexport.Write pages: %w", err)
	}
	summary, err := f.NewSheet(SummarySheet)
	if err != nil {
		return fmt.Errorf("xlsxexport.Write: %w", err)
	}
	if err := writeSummary(f, c, pages, bold); err != nil {
		return fmt.Errorf("xlsxexport.Write summary: %w", err)
	}

	f.SetActiveSheet(summary)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport.Write: %w", err)
	}
	return nil
}

func writePages(f *excelize.File, pages []domain.PageSummary, bold int) error {
	header := make([]interface{}, len(csvexport.Columns))
	for i, c := range csvexport.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(PagesSheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, p := range pages {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			p.Page, string(p.Outcome), p.TextAdded, p.TextRemoved,
			p.ImageAdded, p.ImageRemoved, p.Highlights(),
		}
		if err := f.SetSheetRow(PagesSheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	t := compare.Totals(pages)
	highlights := 0
	for _, p := range pages {
		highlights += p.Highlights()
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	totals := []interface{}{"Total", "", t.TextAdded, t.TextRemoved, t.ImageAdded, t.ImageRemoved, highlights}
	if err := f.SetSheetRow(PagesSheet, cell, &totals); err != nil {
		return err
	}

	last, _ := excelize.CoordinatesToCellName(len(csvexport.Columns), 1)
	if err := f.SetCellStyle(PagesSheet, "A1", last, bold); err != nil {
		return err
	}
	lastTotal, _ := excelize.CoordinatesToCellName(len(csvexport.Columns), row)
	if err := f.SetCellStyle(PagesSheet, cell, lastTotal, bold); err != nil {
		return err
	}
	return f.SetColWidth(PagesSheet, "A", "G", 15)
}

func writeSummary(f *excelize.File, c *domain.Comparison, pages []domain.PageSummary, bold int) error {
	t := compare.Totals(pages)
	completed := ""
	if c.CompletedAt != nil {
		completed = c.CompletedAt.Format(time.RFC3339)
	}

	rows := [][]interface{}{
		{"Comparison ID", c.ID.String()},
		{"Layout", string(c.Layout)},
		{"Status", string(c.Status)},
		{"Original", c.FileAName},
		{"Revised", c.FileBName},
		{"Logical Pages", len(pages)},
		{"Output Pages", c.PageCount},
		{"Pages With Differences", t.Page},
		{"Highlights", c.HighlightCount},
		{"Created At", c.CreatedAt.Format(time.RFC3339)},
		{"Completed At", completed},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	end, _ := excelize.CoordinatesToCellName(1, len(rows))
	if err := f.SetCellStyle(SummarySheet, "A1", end, bold); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "B", 28)
}
