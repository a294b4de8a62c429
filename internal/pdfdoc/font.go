package pdfdoc

import (
	"github.com/ledongthuc/pdf"
	corefont "github.com/pdfcpu/pdfcpu/pkg/font"
)

// Glyph space defaults, in thousandths of the font size.
const (
	defaultWidth    = 500
	defaultAscent   = 750
	defaultCIDWidth = 1000
)

// fontMetrics holds what the interpreter needs to place glyphs of one font.
type fontMetrics struct {
	// twoByte fonts (Type0) use two-byte character codes.
	twoByte bool
	enc     pdf.TextEncoding
	widths  func(code int) float64
	ascent  float64
}

var fallbackFont = &fontMetrics{
	widths: func(int) float64 { return defaultWidth },
	ascent: defaultAscent,
}

func loadFont(v pdf.Value) *fontMetrics {
	if v.Kind() != pdf.Dict {
		return fallbackFont
	}
	f := pdf.Font{V: v}
	m := &fontMetrics{enc: f.Encoder(), ascent: defaultAscent}

	descriptor := v.Key("FontDescriptor")
	if v.Key("Subtype").Name() == "Type0" {
		m.twoByte = true
		descendant := v.Key("DescendantFonts").Index(0)
		descriptor = descendant.Key("FontDescriptor")
		m.widths = cidWidths(descendant)
	} else if base := v.Key("BaseFont").Name(); v.Key("Widths").Len() == 0 && corefont.IsCoreFont(base) {
		m.widths = coreWidths(base)
	} else {
		missing := descriptor.Key("MissingWidth").Float64()
		if missing == 0 {
			missing = defaultWidth
		}
		m.widths = func(code int) float64 {
			if w := f.Width(code); w > 0 {
				return w
			}
			return missing
		}
	}

	if a := descriptor.Key("Ascent").Float64(); a > 0 {
		m.ascent = a
	}
	return m
}

// coreWidths looks up glyph widths of a standard 14 font, which may be used
// without a Widths array. Codes are read as WinAnsiEncoding.
func coreWidths(base string) func(int) float64 {
	return func(code int) float64 {
		return float64(corefont.CharWidth(base, rune(code)))
	}
}

// cidWidths reads the W array of a CIDFont. Entries are either
// "c [w1 w2 ...]" or "cFirst cLast w".
func cidWidths(font pdf.Value) func(int) float64 {
	dw := font.Key("DW").Float64()
	if dw == 0 {
		dw = defaultCIDWidth
	}
	table := map[int]float64{}
	w := font.Key("W")
	for i := 0; i < w.Len(); {
		first := int(w.Index(i).Int64())
		if i+1 < w.Len() && w.Index(i+1).Kind() == pdf.Array {
			list := w.Index(i + 1)
			for j := 0; j < list.Len(); j++ {
				table[first+j] = list.Index(j).Float64()
			}
			i += 2
			continue
		}
		if i+2 >= w.Len() {
			break
		}
		last := int(w.Index(i + 1).Int64())
		width := w.Index(i + 2).Float64()
		for c := first; c <= last && c-first < 0xFFFF; c++ {
			table[c] = width
		}
		i += 3
	}
	return func(code int) float64 {
		if width, ok := table[code]; ok {
			return width
		}
		return dw
	}
}

// codes splits a shown string into character codes.
func (m *fontMetrics) codes(raw string) []string {
	size := 1
	if m.twoByte {
		size = 2
	}
	out := make([]string, 0, len(raw)/size+1)
	for i := 0; i < len(raw); i += size {
		out = append(out, raw[i:min(i+size, len(raw))])
	}
	return out
}

func (m *fontMetrics) width(code string) float64 {
	c := 0
	for i := 0; i < len(code); i++ {
		c = c<<8 | int(code[i])
	}
	return m.widths(c)
}

func (m *fontMetrics) decode(code string) string {
	if m.enc == nil {
		runes := make([]rune, len(code))
		for i := 0; i < len(code); i++ {
			runes[i] = rune(code[i])
		}
		return string(runes)
	}
	return m.enc.Decode(code)
}
