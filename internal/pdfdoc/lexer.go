package pdfdoc

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Operands are float64, bool, nil, name, string (decoded bytes), []any or
// map[string]any.
type name string

type keyword string

// contentOp is one operator of a content stream with its operands.
type contentOp struct {
	op   string
	args []any
	// inline is set for BI, holding the image up to and including EI.
	inline *inlineImage
}

type inlineImage struct {
	dict map[string]any
	data []byte
}

var errInlineImage = errors.New("malformed inline image")

// parseContent tokenizes a decoded content stream and calls emit for each
// operator in order. It stops at the first error emit returns.
func parseContent(data []byte, emit func(contentOp) error) error {
	l := &lexer{data: data}
	var args []any
	for {
		tok, err := l.token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		kw, ok := tok.(keyword)
		if !ok {
			args = append(args, tok)
			continue
		}

		op := contentOp{op: string(kw), args: args}
		if kw == "BI" {
			img, err := l.inlineImage()
			if err != nil {
				return fmt.Errorf("at offset %d: %w", l.pos, err)
			}
			op.inline = img
		}
		if err := emit(op); err != nil {
			return err
		}
		args = nil
	}
}

type lexer struct {
	data []byte
	pos  int
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.data) {
		return l.data[l.pos+off]
	}
	return 0
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		if !isSpace(c) {
			return
		}
		l.pos++
	}
}

// token returns the next operand or keyword, or io.EOF.
func (l *lexer) token() (any, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return nil, io.EOF
	}

	c := l.data[l.pos]
	switch {
	case c == '(':
		l.pos++
		return l.literal(), nil
	case c == '<' && l.peek(1) == '<':
		l.pos += 2
		return l.dict()
	case c == '<':
		l.pos++
		return l.hexString(), nil
	case c == '[':
		l.pos++
		return l.array()
	case c == '/':
		l.pos++
		return name(l.regular()), nil
	case c == '>' && l.peek(1) == '>':
		l.pos += 2
		return keyword(">>"), nil
	case isDelim(c):
		l.pos++
		return keyword(string(c)), nil
	}

	word := l.regular()
	switch word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if strings.ContainsAny(word[:1], "0123456789+-.") {
		if f, err := strconv.ParseFloat(word, 64); err == nil {
			return f, nil
		}
	}
	return keyword(word), nil
}

func (l *lexer) regular() string {
	start := l.pos
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// literal reads a parenthesized string after its opening parenthesis.
func (l *lexer) literal() string {
	start := l.pos
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				raw := string(l.data[start : l.pos-1])
				if b, err := types.Unescape(raw); err == nil {
					return string(b)
				}
				return raw
			}
		}
	}
	return string(l.data[start:min(l.pos, len(l.data))])
}

func (l *lexer) hexString() string {
	var digits []byte
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			break
		}
		if !isSpace(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	b, err := hex.DecodeString(string(digits))
	if err != nil {
		return ""
	}
	return string(b)
}

func (l *lexer) array() ([]any, error) {
	arr := []any{}
	for {
		tok, err := l.token()
		if err == io.EOF {
			return arr, nil
		}
		if err != nil {
			return nil, err
		}
		if tok == keyword("]") {
			return arr, nil
		}
		arr = append(arr, tok)
	}
}

func (l *lexer) dict() (map[string]any, error) {
	d := map[string]any{}
	for {
		tok, err := l.token()
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, err
		}
		if tok == keyword(">>") {
			return d, nil
		}
		key, ok := tok.(name)
		if !ok {
			continue
		}
		val, err := l.token()
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, err
		}
		d[string(key)] = val
	}
}

// inlineImage reads the key/value pairs after BI, then the data between ID
// and EI. The data is not decoded.
func (l *lexer) inlineImage() (*inlineImage, error) {
	dict := map[string]any{}
	for {
		tok, err := l.token()
		if err != nil {
			return nil, errInlineImage
		}
		if tok == keyword("ID") {
			break
		}
		key, ok := tok.(name)
		if !ok {
			return nil, errInlineImage
		}
		val, err := l.token()
		if err != nil {
			return nil, errInlineImage
		}
		dict[string(key)] = val
	}

	// One white-space byte separates ID from the data.
	if l.pos < len(l.data) && isSpace(l.data[l.pos]) {
		l.pos++
	}
	start := l.pos
	for i := start; i+1 < len(l.data); i++ {
		if l.data[i] != 'E' || l.data[i+1] != 'I' {
			continue
		}
		if i > start && !isSpace(l.data[i-1]) {
			continue
		}
		if i+2 < len(l.data) && !isSpace(l.data[i+2]) && !isDelim(l.data[i+2]) {
			continue
		}
		end := i
		if end > start && isSpace(l.data[end-1]) {
			end--
		}
		l.pos = i + 2
		return &inlineImage{dict: dict, data: bytes.Clone(l.data[start:end])}, nil
	}
	return nil, errInlineImage
}
