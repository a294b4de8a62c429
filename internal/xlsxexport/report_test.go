package xlsxexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/xlsxexport"
)

func TestWrite(t *testing.T) {
	completed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := &domain.Comparison{
		ID:             uuid.New(),
		Layout:         domain.LayoutSideBySide,
		Status:         domain.ComparisonStatusCompleted,
		FileAName:      "contract-v1.pdf",
		FileBName:      "contract-v2.pdf",
		PageCount:      3,
		HighlightCount: 5,
		CreatedAt:      completed.Add(-time.Minute),
		CompletedAt:    &completed,
	}
	pages := []domain.PageSummary{
		{Page: 1, Outcome: domain.PageCompared, TextAdded: 2, TextRemoved: 1},
		{Page: 2, Outcome: domain.PageCompared},
		{Page: 3, Outcome: domain.PageAdded, ImageAdded: 0},
		{Page: 4, Outcome: domain.PageSkipped},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, c, pages))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxexport.PagesSheet, xlsxexport.SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(xlsxexport.PagesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Page", rows[0][0])
	assert.Equal(t, []string{"1", "compared", "2", "1", "0", "0", "3"}, rows[1])
	assert.Equal(t, "added", rows[3][1])
	assert.Equal(t, "1", rows[3][6])
	assert.Equal(t, []string{"Total", "", "2", "1", "0", "0", "4"}, rows[5])

	summary, err := f.GetRows(xlsxexport.SummarySheet)
	require.NoError(t, err)
	values := map[string]string{}
	for _, r := range summary {
		if len(r) == 2 {
			values[r[0]] = r[1]
		}
	}
	assert.Equal(t, c.ID.String(), values["Comparison ID"])
	assert.Equal(t, "side_by_side", values["Layout"])
	assert.Equal(t, "contract-v2.pdf", values["Revised"])
	assert.Equal(t, "4", values["Logical Pages"])
	assert.Equal(t, "2", values["Pages With Differences"])
	assert.Equal(t, "2025-03-01T10:00:00Z", values["Completed At"])
}

func TestWrite_NoPages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, &domain.Comparison{ID: uuid.New()}, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxexport.PagesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1][0])
}
