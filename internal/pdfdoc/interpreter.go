package pdfdoc

import (
	"fmt"
	"log"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/filter"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

const (
	maxFormDepth = 8

	inlineImageName = "inline"
)

type graphicsState struct {
	ctm domain.Matrix

	tm, tlm domain.Matrix
	font    *fontMetrics
	size    float64
	charSp  float64
	wordSp  float64
	scale   float64
	leading float64
	rise    float64
}

func newGraphicsState(ctm domain.Matrix) graphicsState {
	return graphicsState{
		ctm:   ctm,
		tm:    domain.IdentityMatrix,
		tlm:   domain.IdentityMatrix,
		scale: 1,
	}
}

// resources is one resource dictionary as seen by both libraries: pdfcpu
// resolves XObjects and ledongthuc decodes fonts.
type resources struct {
	dict types.Dict
	lib  pdf.Value
}

type interpreter struct {
	xref  *model.XRefTable
	visit func(port.ContentEvent)
}

// interpret runs one decoded content stream.
func (in *interpreter) interpret(content []byte, res resources, g graphicsState, depth int) error {
	fonts := map[string]*fontMetrics{}
	var stack []graphicsState

	return parseContent(content, func(c contentOp) error {
		args := c.args
		switch c.op {
		case "q":
			stack = append(stack, g)
		case "Q":
			if len(stack) > 0 {
				g = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		case "cm":
			if m, ok := matrixArgs(args); ok {
				g.ctm = m.Mul(g.ctm)
			}
		case "BT":
			g.tm = domain.IdentityMatrix
			g.tlm = domain.IdentityMatrix
		case "Tf":
			if len(args) == 2 {
				fn := nameArg(args[0])
				if _, ok := fonts[fn]; !ok {
					fonts[fn] = loadFont(res.lib.Key("Font").Key(fn))
				}
				g.font = fonts[fn]
				g.size = num(args[1])
			}
		case "Tc":
			if len(args) == 1 {
				g.charSp = num(args[0])
			}
		case "Tw":
			if len(args) == 1 {
				g.wordSp = num(args[0])
			}
		case "Tz":
			if len(args) == 1 {
				g.scale = num(args[0]) / 100
			}
		case "TL":
			if len(args) == 1 {
				g.leading = num(args[0])
			}
		case "Ts":
			if len(args) == 1 {
				g.rise = num(args[0])
			}
		case "TD":
			if len(args) == 2 {
				g.leading = -num(args[1])
				g.moveLine(num(args[0]), num(args[1]))
			}
		case "Td":
			if len(args) == 2 {
				g.moveLine(num(args[0]), num(args[1]))
			}
		case "Tm":
			if m, ok := matrixArgs(args); ok {
				g.tm, g.tlm = m, m
			}
		case "T*":
			g.moveLine(0, -g.leading)
		case "Tj":
			if len(args) == 1 {
				in.show(&g, strArg(args[0]))
			}
		case "'":
			if len(args) == 1 {
				g.moveLine(0, -g.leading)
				in.show(&g, strArg(args[0]))
			}
		case "\"":
			if len(args) == 3 {
				g.wordSp = num(args[0])
				g.charSp = num(args[1])
				g.moveLine(0, -g.leading)
				in.show(&g, strArg(args[2]))
			}
		case "TJ":
			if len(args) == 1 {
				arr, _ := args[0].([]any)
				for _, el := range arr {
					if s, ok := el.(string); ok {
						in.show(&g, s)
						continue
					}
					tx := -num(el) / 1000 * g.size * g.scale
					g.tm = domain.TranslationMatrix(tx, 0).Mul(g.tm)
				}
			}
		case "BI":
			data := c.inline.data
			in.visit(port.ImageEvent{
				Name:      inlineImageName,
				Transform: g.ctm,
				Payload:   func() ([]byte, error) { return data, nil },
			})
		case "Do":
			if len(args) == 1 {
				return in.xobject(nameArg(args[0]), res, g, depth)
			}
		}
		return nil
	})
}

func (g *graphicsState) moveLine(tx, ty float64) {
	g.tlm = domain.TranslationMatrix(tx, ty).Mul(g.tlm)
	g.tm = g.tlm
}

// show emits one text event for a shown string and advances the text matrix.
func (in *interpreter) show(g *graphicsState, raw string) {
	font := g.font
	if font == nil {
		font = fallbackFont
	}

	var text []rune
	var glyphs []port.Glyph
	for _, code := range font.codes(raw) {
		w := font.width(code)
		trm := domain.Matrix{g.size * g.scale, 0, 0, g.size, 0, g.rise}.Mul(g.tm).Mul(g.ctm)

		decoded := []rune(font.decode(code))
		for i, r := range decoded {
			// A code that decodes to several characters shares its advance
			// evenly between them.
			from := w / 1000 * float64(i) / float64(len(decoded))
			to := w / 1000 * float64(i+1) / float64(len(decoded))
			text = append(text, r)
			glyphs = append(glyphs, port.Glyph{
				BaselineStart: trm.Apply(domain.Point{X: from}),
				AscentEnd:     trm.Apply(domain.Point{X: to, Y: font.ascent / 1000}),
			})
		}

		tx := w/1000*g.size + g.charSp
		if len(code) == 1 && code[0] == ' ' {
			tx += g.wordSp
		}
		g.tm = domain.TranslationMatrix(tx*g.scale, 0).Mul(g.tm)
	}

	if len(text) > 0 {
		in.visit(port.TextEvent{Text: string(text), Glyphs: glyphs})
	}
}

func (in *interpreter) xobject(xname string, res resources, g graphicsState, depth int) error {
	sd, err := in.lookupXObject(res.dict, xname)
	if err != nil {
		return fmt.Errorf("resolving XObject %s: %w", xname, err)
	}
	if sd == nil {
		return nil
	}

	subtype := sd.Dict.Subtype()
	if subtype == nil {
		return nil
	}
	switch *subtype {
	case "Image":
		in.visit(port.ImageEvent{
			Name:      xname,
			Transform: g.ctm,
			Payload:   func() ([]byte, error) { return imageBytes(sd) },
		})
	case "Form":
		if depth >= maxFormDepth {
			log.Printf("pdfdoc.interpreter: form %q nested deeper than %d, skipping", xname, maxFormDepth)
			return nil
		}
		if err := sd.Decode(); err != nil {
			return fmt.Errorf("decoding form %s: %w", xname, err)
		}

		formRes := res
		if o, ok := sd.Dict.Find("Resources"); ok {
			if d, err := in.xref.DereferenceDict(o); err == nil && d != nil {
				formRes = resources{dict: d, lib: res.lib.Key("XObject").Key(xname).Key("Resources")}
			}
		}
		inner := newGraphicsState(g.ctm)
		if m, ok := in.matrixEntry(sd.Dict, "Matrix"); ok {
			inner.ctm = m.Mul(g.ctm)
		}
		return in.interpret(sd.Content, formRes, inner, depth+1)
	}
	return nil
}

// lookupXObject returns nil when the resources have no such XObject.
func (in *interpreter) lookupXObject(res types.Dict, xname string) (*types.StreamDict, error) {
	o, ok := res.Find("XObject")
	if !ok {
		return nil, nil
	}
	xobjects, err := in.xref.DereferenceDict(o)
	if err != nil || xobjects == nil {
		return nil, err
	}
	entry, ok := xobjects.Find(xname)
	if !ok {
		return nil, nil
	}
	sd, _, err := in.xref.DereferenceStreamDict(entry)
	return sd, err
}

func (in *interpreter) matrixEntry(d types.Dict, key string) (domain.Matrix, bool) {
	arr := d.ArrayEntry(key)
	if len(arr) != 6 {
		return domain.Matrix{}, false
	}
	var m domain.Matrix
	for i := range m {
		f, err := in.xref.DereferenceNumber(arr[i])
		if err != nil {
			return domain.Matrix{}, false
		}
		m[i] = f
	}
	return m, true
}

// imageBytes returns the bytes an image is identified by. Image codecs
// (JPEG, JPEG 2000, JBIG2, CCITT) are kept encoded; other filters such as
// Flate with PNG predictors are decoded.
func imageBytes(sd *types.StreamDict) ([]byte, error) {
	for _, f := range sd.FilterPipeline {
		switch f.Name {
		case filter.DCT, filter.JPX, filter.JBIG2, filter.CCITTFax:
			return sd.Raw, nil
		}
	}
	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return sd.Content, nil
}

func num(v any) float64 {
	f, _ := v.(float64)
	return f
}

func nameArg(v any) string {
	n, _ := v.(name)
	return string(n)
}

func strArg(v any) string {
	s, _ := v.(string)
	return s
}

func matrixArgs(args []any) (domain.Matrix, bool) {
	if len(args) != 6 {
		return domain.Matrix{}, false
	}
	var m domain.Matrix
	for i := range m {
		f, ok := args[i].(float64)
		if !ok {
			return domain.Matrix{}, false
		}
		m[i] = f
	}
	return m, true
}
