package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

type stubReader struct {
	pages  int
	events map[int][]port.ContentEvent
	err    error
	visits []int
}

func (r *stubReader) PageCount() int { return r.pages }

func (r *stubReader) PageSize(page int) (float64, float64, bool) {
	if page < 1 || page > r.pages {
		return 0, 0, false
	}
	return 612, 792, true
}

func (r *stubReader) VisitContent(page int, visit func(port.ContentEvent)) error {
	r.visits = append(r.visits, page)
	if r.err != nil {
		return r.err
	}
	for _, ev := range r.events[page] {
		visit(ev)
	}
	return nil
}

func (r *stubReader) Raw() []byte { return nil }

func TestPage_SplitsEventsByKind(t *testing.T) {
	r := &stubReader{pages: 1, events: map[int][]port.ContentEvent{
		1: {
			port.TextEvent{Text: "Hello", Glyphs: diagonalGlyphs(5)},
			port.ImageEvent{Transform: domain.IdentityMatrix, Payload: payload([]byte{1})},
			port.TextEvent{Text: "World", Glyphs: diagonalGlyphs(5)},
		},
	}}

	content, err := Page(r, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "World"}, domain.Identities(content.Text))
	assert.Len(t, content.Images, 1)
}

func TestPage_OutOfRangeIsEmpty(t *testing.T) {
	r := &stubReader{pages: 1}

	content, err := Page(r, 2)
	require.NoError(t, err)
	assert.Empty(t, content.Text)
	assert.Empty(t, content.Images)
	assert.Empty(t, r.visits)
}

func TestPage_PropagatesReaderError(t *testing.T) {
	r := &stubReader{pages: 1, err: errors.New("bad content stream")}

	_, err := Page(r, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 1")
}
