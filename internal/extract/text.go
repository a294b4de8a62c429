// Package extract turns a page's content events into comparable tokens.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

var whitespace = regexp.MustCompile(`\s+`)

// Tokenize converts text runs into word tokens, in paint order.
func Tokenize(events []port.TextEvent) []domain.TextToken {
	var tokens []domain.TextToken
	for _, ev := range events {
		tokens = append(tokens, TokenizeRun(ev)...)
	}
	return tokens
}

// TokenizeRun splits one run on whitespace and walks a cursor over its glyphs.
// A word of n characters takes the glyphs [cursor, cursor+n-1] and moves the
// cursor past them; a blank split element moves the cursor by exactly one,
// however long the separator was. Words starting beyond the last glyph are
// dropped.
func TokenizeRun(ev port.TextEvent) []domain.TextToken {
	var tokens []domain.TextToken
	cursor := 0
	last := len(ev.Glyphs) - 1

	for _, word := range splitWords(ev.Text) {
		if strings.TrimSpace(word) == "" {
			cursor++
			continue
		}
		if cursor > last {
			continue
		}
		end := min(cursor+utf8.RuneCountInString(word)-1, last)
		tokens = append(tokens, domain.TextToken{
			Text: word,
			Box:  domain.RectangleFromCorners(ev.Glyphs[cursor].BaselineStart, ev.Glyphs[end].AscentEnd),
		})
		cursor = end + 1
	}
	return tokens
}

// splitWords splits on whitespace runs. A leading separator yields a leading
// empty element; trailing empty elements are removed.
func splitWords(s string) []string {
	parts := whitespace.Split(s, -1)
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return parts[:n]
}
