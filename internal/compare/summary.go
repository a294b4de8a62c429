package compare

import "pdfcompare/internal/domain"

// Summarize counts the highlights of a composed page.
func Summarize(p int, comp *Composition) domain.PageSummary {
	s := domain.PageSummary{Page: p, Outcome: comp.Outcome}
	for _, in := range comp.Text {
		if in.Added() {
			s.TextAdded++
		} else {
			s.TextRemoved++
		}
	}
	for _, in := range comp.Images {
		if in.Added() {
			s.ImageAdded++
		} else {
			s.ImageRemoved++
		}
	}
	return s
}

// Totals adds up a list of page summaries. The result's Page is the number
// of pages that had at least one highlight.
func Totals(pages []domain.PageSummary) domain.PageSummary {
	var t domain.PageSummary
	for _, p := range pages {
		t.TextAdded += p.TextAdded
		t.TextRemoved += p.TextRemoved
		t.ImageAdded += p.ImageAdded
		t.ImageRemoved += p.ImageRemoved
		if p.Highlights() > 0 {
			t.Page++
		}
	}
	return t
}
