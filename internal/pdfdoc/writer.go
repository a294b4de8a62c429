package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

// Writer builds the comparison PDF with gofpdf, importing source pages as
// templates through gofpdi.
type Writer struct {
	pdf      *gofpdf.Fpdf
	importer *gofpdi.Importer
	// sources keeps one stable stream per source document; the importer
	// identifies a source by its stream pointer.
	sources    map[port.DocumentReader]*io.ReadSeeker
	pageHeight float64
}

var _ port.DocumentWriter = (*Writer)(nil)

// NewWriter opens an output document in points with no margins. It is a
// port.WriterFactory.
func NewWriter(width, height float64) (port.DocumentWriter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pdfdoc.NewWriter: invalid page size %vx%v", width, height)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &Writer{
		pdf:        pdf,
		importer:   gofpdi.NewImporter(),
		sources:    map[port.DocumentReader]*io.ReadSeeker{},
		pageHeight: height,
	}, nil
}

func (w *Writer) NewPage(width, height float64) error {
	w.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
	w.pageHeight = height
	return w.pdf.Error()
}

// EmbedPage draws page of src unscaled with its lower left corner at (x, y).
func (w *Writer) EmbedPage(src port.DocumentReader, page int, x, y float64) (err error) {
	pw, ph, ok := src.PageSize(page)
	if !ok {
		return fmt.Errorf("page %d out of range", page)
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("importing page %d: %v", page, rec)
		}
	}()

	rs, ok := w.sources[src]
	if !ok {
		var stream io.ReadSeeker = bytes.NewReader(src.Raw())
		rs = &stream
		w.sources[src] = rs
	}
	tpl := w.importer.ImportPageFromStream(w.pdf, rs, page, "/MediaBox")
	w.importer.UseImportedTemplate(w.pdf, tpl, x, w.pageHeight-y-ph, pw, ph)
	return w.pdf.Error()
}

func (w *Writer) FillRectangle(rect domain.Rectangle, color domain.Color, opacity float64) error {
	w.pdf.TransformBegin()
	w.pdf.SetAlpha(opacity, "Normal")
	w.pdf.SetFillColor(int(color.R), int(color.G), int(color.B))
	w.pdf.Rect(rect.Left, w.pageHeight-rect.Bottom-rect.Height, rect.Width, rect.Height, "F")
	w.pdf.TransformEnd()
	return w.pdf.Error()
}

// Close finishes the document and returns its bytes.
func (w *Writer) Close() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, errors.New("pdfdoc.Writer.Close: empty output")
	}
	return buf.Bytes(), nil
}
