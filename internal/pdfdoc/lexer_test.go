package pdfdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, content string) []contentOp {
	t.Helper()
	var ops []contentOp
	require.NoError(t, parseContent([]byte(content), func(op contentOp) error {
		ops = append(ops, op)
		return nil
	}))
	return ops
}

func TestParseContent_Operands(t *testing.T) {
	ops := parseAll(t, `q 1 0 0 -1.5 +2 .5 cm % comment
BT /F1 12 Tf (a\(b\)\101) Tj <48 69 7> Tj [(x) -250 (y)] TJ ET
/P << /MCID 3 /Alt (z) >> BDC true null Q`)

	require.Len(t, ops, 10)
	assert.Equal(t, "q", ops[0].op)
	assert.Equal(t, "cm", ops[1].op)
	assert.Equal(t, []any{1.0, 0.0, 0.0, -1.5, 2.0, 0.5}, ops[1].args)
	assert.Equal(t, []any{name("F1"), 12.0}, ops[3].args)
	assert.Equal(t, []any{"a(b)A"}, ops[4].args)
	assert.Equal(t, []any{"Hip"}, ops[5].args)
	assert.Equal(t, []any{[]any{"x", -250.0, "y"}}, ops[6].args)
	assert.Equal(t, "BDC", ops[8].op)
	assert.Equal(t, []any{name("P"), map[string]any{"MCID": 3.0, "Alt": "z"}}, ops[8].args)
	assert.Equal(t, "Q", ops[9].op)
	assert.Equal(t, []any{true, nil}, ops[9].args)
}

func TestParseContent_InlineImage(t *testing.T) {
	ops := parseAll(t, "q BI /W 2 /H 1 /F /AHx ID EIxEI\nzz EI Q")

	require.Len(t, ops, 3)
	require.NotNil(t, ops[1].inline)
	assert.Equal(t, "BI", ops[1].op)
	assert.Equal(t, map[string]any{"W": 2.0, "H": 1.0, "F": name("AHx")}, ops[1].inline.dict)
	assert.Equal(t, []byte("EIxEI\nzz"), ops[1].inline.data)
	assert.Equal(t, "Q", ops[2].op)
}

func TestParseContent_UnterminatedInlineImage(t *testing.T) {
	err := parseContent([]byte("BI /W 2 ID abc"), func(contentOp) error { return nil })
	assert.ErrorIs(t, err, errInlineImage)
}

func TestParseContent_StopsOnEmitError(t *testing.T) {
	calls := 0
	err := parseContent([]byte("q Q q"), func(contentOp) error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}
