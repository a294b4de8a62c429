package compare

import (
	"context"
	"fmt"
	"log"
	"math"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

// Initial output page size (A4 in points). Every emitted page sets its own size.
const (
	initialPageWidth  = 595
	initialPageHeight = 842
)

// Result is a finished comparison.
type Result struct {
	Output []byte
	// PageCount is the number of pages in Output.
	PageCount int
	Pages     []domain.PageSummary
}

// Highlights returns the number of highlight rectangles drawn.
func (r *Result) Highlights() int {
	n := 0
	for _, p := range r.Pages {
		n += p.Highlights()
	}
	return n
}

// Comparator produces highlighted comparison documents.
type Comparator struct {
	open      port.DocumentOpener
	newWriter port.WriterFactory
	maxPages  int
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithMaxPages rejects inputs with more than n pages. Zero means no limit.
func WithMaxPages(n int) Option {
	return func(c *Comparator) { c.maxPages = n }
}

// NewComparator creates a Comparator that parses inputs with open and writes
// output with documents from newWriter.
func NewComparator(open port.DocumentOpener, newWriter port.WriterFactory, opts ...Option) *Comparator {
	c := &Comparator{open: open, newWriter: newWriter}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompareBytes parses both documents and compares them. Both inputs are
// parsed before any page is processed.
func (c *Comparator) CompareBytes(ctx context.Context, a, b []byte, mode domain.LayoutMode) (*Result, error) {
	docA, err := c.open(a)
	if err != nil {
		return nil, fmt.Errorf("opening original document: %w", err)
	}
	docB, err := c.open(b)
	if err != nil {
		return nil, fmt.Errorf("opening revised document: %w", err)
	}
	return c.Compare(ctx, docA, docB, mode)
}

// Compare renders every logical page of the two documents into a new
// document with differences highlighted. Pages are processed in order and
// any page failure aborts the whole comparison.
func (c *Comparator) Compare(ctx context.Context, docA, docB port.DocumentReader, mode domain.LayoutMode) (*Result, error) {
	total := max(docA.PageCount(), docB.PageCount())
	if c.maxPages > 0 && total > c.maxPages {
		return nil, fmt.Errorf("%d pages, limit %d: %w", total, c.maxPages, domain.ErrTooManyPages)
	}

	w, err := c.newWriter(initialPageWidth, initialPageHeight)
	if err != nil {
		return nil, fmt.Errorf("opening output document: %w", err)
	}

	result := &Result{Pages: make([]domain.PageSummary, 0, total)}
	for p := 1; p <= total; p++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		geo := ResolveGeometry(docA, docB, p, mode)
		if geo.Skipped() {
			result.Pages = append(result.Pages, domain.PageSummary{Page: p, Outcome: domain.PageSkipped})
			continue
		}

		comp, err := c.renderPage(ctx, w, docA, docB, p, geo, mode)
		if err != nil {
			return nil, fmt.Errorf("compare: page %d: %w", p, err)
		}
		result.PageCount++
		result.Pages = append(result.Pages, Summarize(p, comp))
	}

	out, err := w.Close()
	if err != nil {
		return nil, fmt.Errorf("closing output document: %w", err)
	}
	result.Output = out

	log.Printf("compare.Compare: %d logical pages, %d output pages, %d highlights (%s)",
		total, result.PageCount, result.Highlights(), mode)
	return result, nil
}

func (c *Comparator) renderPage(ctx context.Context, w port.DocumentWriter, docA, docB port.DocumentReader, p int, geo domain.PageGeometry, mode domain.LayoutMode) (*Composition, error) {
	if err := w.NewPage(geo.CombinedWidth, geo.CombinedHeight); err != nil {
		return nil, fmt.Errorf("starting page: %w", err)
	}

	if _, _, ok := docB.PageSize(p); ok {
		x := 0.0
		if mode.SideBySide() {
			x = geo.WidthA
		}
		if err := w.EmbedPage(docB, p, x, 0); err != nil {
			return nil, fmt.Errorf("embedding revised page: %w", err)
		}
	}
	if _, _, ok := docA.PageSize(p); ok && mode.SideBySide() {
		if err := w.EmbedPage(docA, p, 0, 0); err != nil {
			return nil, fmt.Errorf("embedding original page: %w", err)
		}
	}

	comp, err := Compose(ctx, docA, docB, p, geo, mode)
	if err != nil {
		return nil, err
	}
	for _, in := range comp.Instructions() {
		if err := w.FillRectangle(in.Placed(), in.Color, in.Opacity); err != nil {
			return nil, fmt.Errorf("drawing highlight: %w", err)
		}
	}
	return comp, nil
}

// ResolveGeometry sizes the output page for logical page p.
func ResolveGeometry(docA, docB port.DocumentReader, p int, mode domain.LayoutMode) domain.PageGeometry {
	var geo domain.PageGeometry
	if w, h, ok := docA.PageSize(p); ok {
		geo.WidthA, geo.HeightA = w, h
	}
	if w, h, ok := docB.PageSize(p); ok {
		geo.WidthB, geo.HeightB = w, h
	}

	geo.CombinedWidth = geo.WidthB
	if mode.SideBySide() {
		geo.CombinedWidth = geo.WidthA + geo.WidthB
	}
	geo.CombinedHeight = math.Max(geo.HeightA, geo.HeightB)
	return geo
}
