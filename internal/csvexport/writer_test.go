package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompare/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Len(t, row, 7)
	assert.Equal(t, "Page", row[0])
	assert.Equal(t, "Highlights", row[6])
}

func TestWritePages(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WritePages([]domain.PageSummary{
		{Page: 1, Outcome: domain.PageCompared, TextAdded: 2, TextRemoved: 1, ImageRemoved: 1},
		{Page: 2, Outcome: domain.PageAdded},
		{Page: 3, Outcome: domain.PageSkipped},
	}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"1", "compared", "2", "1", "0", "1", "4"}, rows[0])
	assert.Equal(t, []string{"2", "added", "0", "0", "0", "0", "1"}, rows[1])
	assert.Equal(t, "0", rows[2][6])
}

func TestPageRow_RemovedPageCountsOneHighlight(t *testing.T) {
	row := PageRow(&domain.PageSummary{Page: 4, Outcome: domain.PageRemoved})
	assert.Equal(t, "removed", row[1])
	assert.Equal(t, "1", row[6])
}
