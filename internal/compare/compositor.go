// Package compare drives a page-by-page visual comparison of two documents.
package compare

import (
	"context"

	"golang.org/x/sync/errgroup"

	"pdfcompare/internal/diff"
	"pdfcompare/internal/domain"
	"pdfcompare/internal/extract"
	"pdfcompare/internal/highlight"
	"pdfcompare/internal/port"
)

// Composition is the set of highlights planned for one logical page.
type Composition struct {
	Outcome domain.PageOutcome
	// Page holds the single whole-page highlight of the added/removed branches.
	Page   []highlight.Instruction
	Text   []highlight.Instruction
	Images []highlight.Instruction
}

// Instructions returns every highlight in drawing order.
func (c *Composition) Instructions() []highlight.Instruction {
	out := make([]highlight.Instruction, 0, len(c.Page)+len(c.Text)+len(c.Images))
	out = append(out, c.Page...)
	out = append(out, c.Text...)
	return append(out, c.Images...)
}

// Compose decides how page p is highlighted. A page present only in B is
// marked added in either layout; a page present only in A is marked removed
// when side by side. Every other case runs a full token comparison, which
// sees an empty sequence for a document lacking the page.
func Compose(ctx context.Context, docA, docB port.DocumentReader, p int, geo domain.PageGeometry, mode domain.LayoutMode) (*Composition, error) {
	pagesA, pagesB := docA.PageCount(), docB.PageCount()

	if p > pagesA && p <= pagesB {
		offset := 0.0
		if mode.SideBySide() {
			offset = geo.WidthA
		}
		rect := domain.Rectangle{Width: geo.WidthB, Height: geo.HeightB}
		return &Composition{
			Outcome: domain.PageAdded,
			Page:    []highlight.Instruction{highlight.WholePage(rect, domain.ColorAdded, offset)},
		}, nil
	}

	if p <= pagesA && p > pagesB && mode.SideBySide() {
		rect := domain.Rectangle{Width: geo.WidthA, Height: geo.HeightA}
		return &Composition{
			Outcome: domain.PageRemoved,
			Page:    []highlight.Instruction{highlight.WholePage(rect, domain.ColorRemoved, 0)},
		}, nil
	}

	contentA, contentB, err := extractBoth(ctx, docA, docB, p)
	if err != nil {
		return nil, err
	}

	offsetB := 0.0
	if mode.SideBySide() {
		offsetB = geo.WidthA
	}

	textDeltas := diff.Compute(domain.Identities(contentA.Text), domain.Identities(contentB.Text))
	imageDeltas := diff.Compute(domain.Identities(contentA.Images), domain.Identities(contentB.Images))

	return &Composition{
		Outcome: domain.PageCompared,
		Text:    highlight.Plan(textDeltas, contentA.Text, contentB.Text, mode, offsetB),
		Images:  highlight.Plan(imageDeltas, contentA.Images, contentB.Images, mode, offsetB),
	}, nil
}

// extractBoth reads page p of both documents concurrently.
func extractBoth(ctx context.Context, docA, docB port.DocumentReader, p int) (*extract.PageContent, *extract.PageContent, error) {
	var contentA, contentB *extract.PageContent
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contentA, err = extract.Page(docA, p)
		return err
	})
	g.Go(func() error {
		var err error
		contentB, err = extract.Page(docB, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return contentA, contentB, nil
}
