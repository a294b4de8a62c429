package extract

import (
	"fmt"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

// PageContent holds the token sequences of one page of one document.
type PageContent struct {
	Text   []domain.TextToken
	Images []domain.ImageRegion
}

// Page walks the page's content once and tokenizes text and images. A page
// index outside the document yields empty sequences.
func Page(doc port.DocumentReader, page int) (*PageContent, error) {
	if page < 1 || page > doc.PageCount() {
		return &PageContent{}, nil
	}

	var texts []port.TextEvent
	var images []port.ImageEvent
	err := doc.VisitContent(page, func(ev port.ContentEvent) {
		switch e := ev.(type) {
		case port.TextEvent:
			texts = append(texts, e)
		case port.ImageEvent:
			images = append(images, e)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("extracting page %d: %w", page, err)
	}

	return &PageContent{
		Text:   Tokenize(texts),
		Images: ExtractImages(images),
	}, nil
}
