package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PageGeometry holds the sizes resolved for one logical page index. A zero
// width and height means the page is absent from that document.
type PageGeometry struct {
	WidthA         float64 `json:"width_a"`
	HeightA        float64 `json:"height_a"`
	WidthB         float64 `json:"width_b"`
	HeightB        float64 `json:"height_b"`
	CombinedWidth  float64 `json:"combined_width"`
	CombinedHeight float64 `json:"combined_height"`
}

// Skipped reports whether no output page should be produced.
func (g PageGeometry) Skipped() bool {
	return g.CombinedWidth == 0 || g.CombinedHeight == 0
}

// PageSummary counts the highlights drawn on one logical page.
type PageSummary struct {
	Page         int         `json:"page"`
	Outcome      PageOutcome `json:"outcome"`
	TextAdded    int         `json:"text_added"`
	TextRemoved  int         `json:"text_removed"`
	ImageAdded   int         `json:"image_added"`
	ImageRemoved int         `json:"image_removed"`
}

// Highlights returns the total number of highlight rectangles on the page.
func (s PageSummary) Highlights() int {
	n := s.TextAdded + s.TextRemoved + s.ImageAdded + s.ImageRemoved
	if n == 0 && (s.Outcome == PageAdded || s.Outcome == PageRemoved) {
		return 1
	}
	return n
}

// Comparison is a stored comparison job and its result metadata.
type Comparison struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	Layout         LayoutMode       `db:"layout" json:"layout"`
	Status         ComparisonStatus `db:"status" json:"status"`
	FileAName      string           `db:"file_a_name" json:"file_a_name"`
	FileBName      string           `db:"file_b_name" json:"file_b_name"`
	FileAKey       string           `db:"file_a_key" json:"-"`
	FileBKey       string           `db:"file_b_key" json:"-"`
	OutputKey      string           `db:"output_key" json:"-"`
	S3Bucket       string           `db:"s3_bucket" json:"-"`
	PageCount      int              `db:"page_count" json:"page_count"`
	HighlightCount int              `db:"highlight_count" json:"highlight_count"`
	PageSummaries  json.RawMessage  `db:"page_summaries" json:"page_summaries"`
	NotifyEmail    string           `db:"notify_email" json:"notify_email,omitempty"`
	RequestedBy    string           `db:"requested_by" json:"requested_by,omitempty"`
	Attempts       int              `db:"attempts" json:"attempts"`
	ErrorMessage   string           `db:"error_message" json:"error_message,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
	CompletedAt    *time.Time       `db:"completed_at" json:"completed_at"`
}

// Summaries decodes the stored per-page summaries.
func (c *Comparison) Summaries() ([]PageSummary, error) {
	if len(c.PageSummaries) == 0 {
		return nil, nil
	}
	var out []PageSummary
	if err := json.Unmarshal(c.PageSummaries, &out); err != nil {
		return nil, err
	}
	return out, nil
}
