package compare_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompare/internal/compare"
	"pdfcompare/internal/compare/comparetest"
	"pdfcompare/internal/domain"
)

func TestCompose_AbsentRevisedPageInOverlayIsCompared(t *testing.T) {
	docA := &comparetest.Document{Pages: []comparetest.Page{letter(), letter(comparetest.Word{Text: "gone", X: 10, Y: 10})}}
	docB := &comparetest.Document{Pages: []comparetest.Page{letter()}}
	geo := domain.PageGeometry{WidthA: 612, HeightA: 792, CombinedWidth: 612, CombinedHeight: 792}

	comp, err := compare.Compose(context.Background(), docA, docB, 2, geo, domain.LayoutOverlay)
	require.NoError(t, err)

	assert.Equal(t, domain.PageCompared, comp.Outcome)
	assert.Empty(t, comp.Page)
	// Every token of A is a deletion, and deletions are not drawn in overlay mode.
	assert.Empty(t, comp.Instructions())
	assert.Contains(t, docA.Visits(), 2)
	assert.NotContains(t, docB.Visits(), 2)
}

func TestCompose_AbsentRevisedPageSideBySideIsRemoved(t *testing.T) {
	docA := &comparetest.Document{Pages: []comparetest.Page{letter(), letter()}}
	docB := &comparetest.Document{Pages: []comparetest.Page{letter()}}
	geo := compare.ResolveGeometry(docA, docB, 2, domain.LayoutSideBySide)

	comp, err := compare.Compose(context.Background(), docA, docB, 2, geo, domain.LayoutSideBySide)
	require.NoError(t, err)

	assert.Equal(t, domain.PageRemoved, comp.Outcome)
	require.Len(t, comp.Page, 1)
	assert.Equal(t, domain.ColorRemoved, comp.Page[0].Color)
	assert.Zero(t, comp.Page[0].XOffset)
	assert.Empty(t, docA.Visits())
}

func TestCompose_ExtractionErrorPropagates(t *testing.T) {
	boom := errors.New("broken content stream")
	docA := &comparetest.Document{Pages: []comparetest.Page{{Width: 612, Height: 792, Err: boom}}}
	docB := &comparetest.Document{Pages: []comparetest.Page{letter()}}
	geo := compare.ResolveGeometry(docA, docB, 1, domain.LayoutOverlay)

	_, err := compare.Compose(context.Background(), docA, docB, 1, geo, domain.LayoutOverlay)
	assert.ErrorIs(t, err, boom)
}

func TestTotals(t *testing.T) {
	pages := []domain.PageSummary{
		{Page: 1, Outcome: domain.PageCompared, TextAdded: 2, ImageRemoved: 1},
		{Page: 2, Outcome: domain.PageCompared},
		{Page: 3, Outcome: domain.PageAdded},
		{Page: 4, Outcome: domain.PageSkipped},
	}

	got := compare.Totals(pages)

	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 2, got.TextAdded)
	assert.Equal(t, 1, got.ImageRemoved)
}
