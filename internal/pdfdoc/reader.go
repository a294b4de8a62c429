// Package pdfdoc adapts PDF libraries to the document ports used by the
// comparison engine.
package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

func init() {
	api.DisableConfigDir()
}

// Reader is a parsed PDF. Page geometry, content streams and images come
// from pdfcpu; fonts are decoded with ledongthuc/pdf.
type Reader struct {
	embed []byte
	dims  []types.Dim

	// mu guards ctx, whose lookups mark xref entries.
	mu    sync.Mutex
	ctx   *model.Context
	fonts *pdf.Reader
}

var _ port.DocumentReader = (*Reader)(nil)

// Open parses and validates a PDF. Any failure wraps domain.ErrInvalidDocument.
func Open(data []byte) (*Reader, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", domain.ErrInvalidDocument)
	}

	ctx, err := readContext(data, relaxedConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}

	// Sizes are the unrotated media boxes, the space page content is drawn in.
	boundaries, err := ctx.PageBoundaries(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: reading page sizes: %v", domain.ErrInvalidDocument, err)
	}
	dims := make([]types.Dim, len(boundaries))
	var rotated []int
	for i, pb := range boundaries {
		box := pb.MediaBox()
		if box == nil {
			return nil, fmt.Errorf("%w: page %d has no media box", domain.ErrInvalidDocument, i+1)
		}
		dims[i] = box.Dimensions()
		if pb.Rot%360 != 0 {
			rotated = append(rotated, i+1)
		}
	}

	embed := data
	if len(rotated) > 0 {
		if embed, err = unrotate(data, rotated); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
		}
	}

	fonts, err := newFontReader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}

	return &Reader{embed: embed, dims: dims, ctx: ctx, fonts: fonts}, nil
}

// Opener is Open as a port.DocumentOpener.
func Opener(data []byte) (port.DocumentReader, error) {
	r, err := Open(data)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func relaxedConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func readContext(data []byte, conf *model.Configuration) (*model.Context, error) {
	return api.ReadContext(bytes.NewReader(data), conf)
}

// unrotate rewrites data with /Rotate 0 on the given pages, so that
// embedded pages keep the orientation their content is drawn in.
func unrotate(data []byte, pages []int) ([]byte, error) {
	// The importer reads classic cross-reference tables most reliably.
	conf := relaxedConfig()
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	ctx, err := readContext(data, conf)
	if err != nil {
		return nil, err
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, err
	}
	for _, p := range pages {
		d, _, _, err := ctx.PageDict(p, false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %v", p, err)
		}
		d["Rotate"] = types.Integer(0)
	}
	if err := api.OptimizeContext(ctx); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("writing unrotated copy: %v", err)
	}
	return buf.Bytes(), nil
}

func newFontReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parsing fonts: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

func (r *Reader) PageCount() int { return len(r.dims) }

// PageSize reports the page's media box, ignoring /Rotate.
func (r *Reader) PageSize(page int) (float64, float64, bool) {
	if page < 1 || page > len(r.dims) {
		return 0, 0, false
	}
	d := r.dims[page-1]
	return d.Width, d.Height, true
}

// VisitContent interprets the page's content streams, following form
// XObjects, and reports every painted text run and image.
func (r *Reader) VisitContent(page int, visit func(port.ContentEvent)) (err error) {
	if page < 1 || page > len(r.dims) {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("interpreting page %d: %v", page, rec)
		}
	}()

	d, _, inherited, err := r.ctx.PageDict(page, false)
	if err != nil {
		return fmt.Errorf("reading page %d: %w", page, err)
	}
	content, err := r.ctx.PageContent(d, page)
	if errors.Is(err, model.ErrNoContent) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("decoding page %d: %w", page, err)
	}

	res := resources{}
	if inherited != nil {
		res.dict = inherited.Resources
	}
	if page <= r.fonts.NumPage() {
		res.lib = r.fonts.Page(page).Resources()
	}

	in := &interpreter{xref: r.ctx.XRefTable, visit: visit}
	if err := in.interpret(content, res, newGraphicsState(domain.IdentityMatrix), 0); err != nil {
		return fmt.Errorf("interpreting page %d: %w", page, err)
	}
	return nil
}

// Raw returns the document used for embedding pages. Rotated pages are
// stored with /Rotate 0.
func (r *Reader) Raw() []byte { return r.embed }
