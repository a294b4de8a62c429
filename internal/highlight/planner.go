// Package highlight turns token diffs into rectangle fill instructions.
package highlight

import (
	"pdfcompare/internal/diff"
	"pdfcompare/internal/domain"
)

// Opacity presets for the single fill primitive.
const (
	TokenOpacity = 0.3
	PageOpacity  = 0.2
)

// Instruction is one translucent rectangle to paint on the output page.
type Instruction struct {
	Rect    domain.Rectangle `json:"rect"`
	Color   domain.Color     `json:"color"`
	XOffset float64          `json:"x_offset"`
	Opacity float64          `json:"opacity"`
}

// Placed returns the rectangle shifted into output page coordinates.
func (in Instruction) Placed() domain.Rectangle {
	return in.Rect.Shift(in.XOffset)
}

// Added reports whether the instruction marks inserted content.
func (in Instruction) Added() bool { return in.Color == domain.ColorAdded }

// Plan maps deltas over a and b to highlight instructions. Deletions are
// drawn only side by side, on the original at offset 0; insertions are
// always drawn, on the revised document at offsetB. Indices outside either
// sequence are ignored.
func Plan[T domain.Token](deltas []diff.Delta, a, b []T, mode domain.LayoutMode, offsetB float64) []Instruction {
	var out []Instruction
	for _, d := range deltas {
		if d.Kind == diff.KindDelete || d.Kind == diff.KindChange {
			if mode.SideBySide() {
				out = appendRange(out, a, d.Source, domain.ColorRemoved, 0)
			}
		}
		if d.Kind == diff.KindInsert || d.Kind == diff.KindChange {
			out = appendRange(out, b, d.Target, domain.ColorAdded, offsetB)
		}
	}
	return out
}

func appendRange[T domain.Token](out []Instruction, tokens []T, r diff.Range, color domain.Color, xOffset float64) []Instruction {
	for i := max(r.Start, 0); i < r.End() && i < len(tokens); i++ {
		out = append(out, Instruction{
			Rect:    tokens[i].BoundingBox(),
			Color:   color,
			XOffset: xOffset,
			Opacity: TokenOpacity,
		})
	}
	return out
}

// WholePage marks an entire page as added or removed.
func WholePage(rect domain.Rectangle, color domain.Color, xOffset float64) Instruction {
	return Instruction{Rect: rect, Color: color, XOffset: xOffset, Opacity: PageOpacity}
}
