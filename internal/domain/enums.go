package domain

import "strings"

// LayoutMode selects how the two documents share the output canvas.
type LayoutMode string

const (
	// LayoutOverlay draws only the revised document; only insertions are marked.
	LayoutOverlay LayoutMode = "overlay"
	// LayoutSideBySide draws the original on the left and the revised on the right.
	LayoutSideBySide LayoutMode = "side_by_side"
)

// SideBySide reports whether the original document gets its own half of the canvas.
func (m LayoutMode) SideBySide() bool { return m == LayoutSideBySide }

// LayoutFromMultiple maps the upload form's isMultiple flag to a layout.
func LayoutFromMultiple(multiple bool) LayoutMode {
	if multiple {
		return LayoutSideBySide
	}
	return LayoutOverlay
}

// ParseLayoutMode accepts the canonical names plus a few common spellings.
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overlay":
		return LayoutOverlay, nil
	case "side_by_side", "side-by-side", "sidebyside", "multiple":
		return LayoutSideBySide, nil
	default:
		return "", ErrInvalidLayout
	}
}

// Color is an RGB fill color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	// ColorAdded marks content present only in the revised document.
	ColorAdded = Color{R: 0, G: 255, B: 0}
	// ColorRemoved marks content present only in the original document.
	ColorRemoved = Color{R: 255, G: 0, B: 0}
)

// PageOutcome records which compositor branch produced a page.
type PageOutcome string

const (
	PageCompared PageOutcome = "compared"
	PageAdded    PageOutcome = "added"
	PageRemoved  PageOutcome = "removed"
	PageSkipped  PageOutcome = "skipped"
)

// ComparisonStatus represents the lifecycle of a stored comparison.
type ComparisonStatus string

const (
	ComparisonStatusQueued     ComparisonStatus = "queued"
	ComparisonStatusProcessing ComparisonStatus = "processing"
	ComparisonStatusCompleted  ComparisonStatus = "completed"
	ComparisonStatusFailed     ComparisonStatus = "failed"
	ComparisonStatusDeleted    ComparisonStatus = "deleted"
)

// ContentTypePDF is the only accepted upload content type.
const ContentTypePDF = "application/pdf"

// AllowedExtensions lists accepted upload file extensions (without dot).
var AllowedExtensions = map[string]bool{
	"pdf": true,
}
