package domain

// Token is a positioned unit of comparison. Two tokens are equal for diffing
// purposes when their identities match; position never takes part.
type Token interface {
	Identity() string
	BoundingBox() Rectangle
}

// TextToken is a maximal non-whitespace run of text painted on a page.
type TextToken struct {
	Text string    `json:"text"`
	Box  Rectangle `json:"box"`
}

func (t TextToken) Identity() string       { return t.Text }
func (t TextToken) BoundingBox() Rectangle { return t.Box }

// ImageRegion is one occurrence of an image on a page, identified by its content.
type ImageRegion struct {
	ContentID string    `json:"content_id"`
	Box       Rectangle `json:"box"`
}

func (r ImageRegion) Identity() string       { return r.ContentID }
func (r ImageRegion) BoundingBox() Rectangle { return r.Box }

// Identities projects tokens onto their identity values, preserving order.
func Identities[T Token](tokens []T) []string {
	ids := make([]string, len(tokens))
	for i, t := range tokens {
		ids[i] = t.Identity()
	}
	return ids
}
