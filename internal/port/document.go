package port

import "pdfcompare/internal/domain"

// ContentEvent is either a TextEvent or an ImageEvent.
type ContentEvent interface {
	contentEvent()
}

// Glyph holds the geometry of one painted character.
type Glyph struct {
	BaselineStart domain.Point
	AscentEnd     domain.Point
}

// TextEvent is one painted text run with a glyph record per character of Text.
type TextEvent struct {
	Text   string
	Glyphs []Glyph
}

// ImageEvent is one painted image. Payload is nil when the reader could not
// locate the image data at all.
type ImageEvent struct {
	Name      string
	Transform domain.Matrix
	Payload   func() ([]byte, error)
}

func (TextEvent) contentEvent()  {}
func (ImageEvent) contentEvent() {}

// DocumentReader exposes the paged content of a parsed source document.
// Page indices are 1-based.
type DocumentReader interface {
	PageCount() int
	// PageSize returns ok=false when the page does not exist.
	PageSize(page int) (width, height float64, ok bool)
	// VisitContent calls visit synchronously for every content event of the
	// page, in paint order. Pages outside 1..PageCount produce no events.
	VisitContent(page int, visit func(ContentEvent)) error
	// Raw returns the encoded document used for template embedding, with
	// every page in the orientation PageSize reports.
	Raw() []byte
}

// DocumentWriter builds the output document one page at a time.
type DocumentWriter interface {
	NewPage(width, height float64) error
	EmbedPage(src DocumentReader, page int, x, y float64) error
	// FillRectangle paints a translucent rectangle with the drawing state
	// saved before and restored after the fill.
	FillRectangle(rect domain.Rectangle, color domain.Color, opacity float64) error
	Close() ([]byte, error)
}

// DocumentOpener parses an encoded document.
type DocumentOpener func(data []byte) (DocumentReader, error)

// WriterFactory opens a new output document with the given initial page size.
type WriterFactory func(width, height float64) (DocumentWriter, error)
