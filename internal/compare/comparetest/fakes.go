// Package comparetest provides in-memory documents and a recording writer
// for exercising the comparison engine without parsing real files.
package comparetest

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

// Page is one page of a fake document.
type Page struct {
	Width, Height float64
	Words         []Word
	Images        []Image
	// Err is returned from VisitContent for this page.
	Err error `json:"-"`
}

// Word is painted as a single text run with evenly spaced glyphs.
type Word struct {
	Text string
	X, Y float64
}

// Image is painted as an image event with the given transform and bytes.
type Image struct {
	Data      []byte
	Transform domain.Matrix
}

// Document is an in-memory port.DocumentReader.
type Document struct {
	Pages []Page

	mu     sync.Mutex
	visits []int
}

// GlyphWidth is the advance of every fake glyph.
const GlyphWidth = 6

// GlyphHeight is the ascent of every fake glyph.
const GlyphHeight = 10

func (d *Document) PageCount() int { return len(d.Pages) }

func (d *Document) PageSize(page int) (float64, float64, bool) {
	if page < 1 || page > len(d.Pages) {
		return 0, 0, false
	}
	p := d.Pages[page-1]
	return p.Width, p.Height, true
}

func (d *Document) VisitContent(page int, visit func(port.ContentEvent)) error {
	d.mu.Lock()
	d.visits = append(d.visits, page)
	d.mu.Unlock()

	if page < 1 || page > len(d.Pages) {
		return nil
	}
	p := d.Pages[page-1]
	if p.Err != nil {
		return p.Err
	}
	for _, w := range p.Words {
		visit(TextRun(w.Text, w.X, w.Y))
	}
	for _, img := range p.Images {
		data := img.Data
		visit(port.ImageEvent{
			Transform: img.Transform,
			Payload:   func() ([]byte, error) { return data, nil },
		})
	}
	return nil
}

// Raw returns a JSON encoding of the pages so Open can round-trip it.
func (d *Document) Raw() []byte {
	b, _ := json.Marshal(d.Pages)
	return b
}

// Visits returns the page indices passed to VisitContent.
func (d *Document) Visits() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.visits...)
}

// TextRun builds a text event whose glyphs advance GlyphWidth per character.
func TextRun(text string, x, y float64) port.TextEvent {
	runes := []rune(text)
	glyphs := make([]port.Glyph, len(runes))
	for i := range runes {
		left := x + float64(i)*GlyphWidth
		glyphs[i] = port.Glyph{
			BaselineStart: domain.Point{X: left, Y: y},
			AscentEnd:     domain.Point{X: left + GlyphWidth, Y: y + GlyphHeight},
		}
	}
	return port.TextEvent{Text: text, Glyphs: glyphs}
}

// ErrUnreadable is returned by Open for input that is not a fake document.
var ErrUnreadable = errors.New("comparetest: unreadable document")

// Open is a port.DocumentOpener for documents produced by Document.Raw.
func Open(data []byte) (port.DocumentReader, error) {
	var pages []Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, ErrUnreadable)
	}
	return &Document{Pages: pages}, nil
}

// Op is one call recorded by Writer.
type Op struct {
	Name    string
	Width   float64
	Height  float64
	Page    int
	X, Y    float64
	Rect    domain.Rectangle
	Color   domain.Color
	Opacity float64
	Source  port.DocumentReader
}

// Writer records every drawing call.
type Writer struct {
	InitialWidth, InitialHeight float64
	Ops                         []Op
	Closed                      bool

	// FailOn makes the named operation return an error.
	FailOn string
}

// NewWriter returns a port.WriterFactory that stores the created writer in *dst.
func NewWriter(dst **Writer) port.WriterFactory {
	return func(width, height float64) (port.DocumentWriter, error) {
		w := &Writer{InitialWidth: width, InitialHeight: height}
		if *dst != nil {
			w.FailOn = (*dst).FailOn
		}
		*dst = w
		return w, nil
	}
}

func (w *Writer) fail(name string) error {
	if w.FailOn == name {
		return fmt.Errorf("comparetest: %s failed", name)
	}
	return nil
}

func (w *Writer) NewPage(width, height float64) error {
	w.Ops = append(w.Ops, Op{Name: "NewPage", Width: width, Height: height})
	return w.fail("NewPage")
}

func (w *Writer) EmbedPage(src port.DocumentReader, page int, x, y float64) error {
	w.Ops = append(w.Ops, Op{Name: "EmbedPage", Source: src, Page: page, X: x, Y: y})
	return w.fail("EmbedPage")
}

func (w *Writer) FillRectangle(rect domain.Rectangle, color domain.Color, opacity float64) error {
	w.Ops = append(w.Ops, Op{Name: "FillRectangle", Rect: rect, Color: color, Opacity: opacity})
	return w.fail("FillRectangle")
}

func (w *Writer) Close() ([]byte, error) {
	w.Closed = true
	if err := w.fail("Close"); err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("%%PDF-fake pages=%d", w.Count("NewPage"))), nil
}

// Count returns how many times the named operation was recorded.
func (w *Writer) Count(name string) int {
	n := 0
	for _, op := range w.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the recorded operations with the given name.
func (w *Writer) Filter(name string) []Op {
	var out []Op
	for _, op := range w.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}
