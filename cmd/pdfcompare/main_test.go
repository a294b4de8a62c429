package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePDF(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		pdf.AddPage()
		pdf.Text(72, 100, line)
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestRunCompare_WritesOutputAndSummary(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", "Hello World")
	b := writePDF(t, dir, "b.pdf", "Hello Mars", "Second page")
	out := filepath.Join(dir, "diff.pdf")

	var stdout, stderr bytes.Buffer
	err := runCompare(context.Background(), []string{"-a", a, "-b", b, "-o", out, "-side-by-side"}, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	summary := stdout.String()
	assert.Contains(t, summary, "PAGE")
	assert.Contains(t, summary, "added")
	assert.Contains(t, summary, "2 of 2 pages differ")
}

func TestRunCompare_StdoutOutput(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", "Same")

	var stdout, stderr bytes.Buffer
	err := runCompare(context.Background(), []string{"-a", a, "-b", a, "-o", "-"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(stdout.Bytes(), []byte("%PDF")))
	assert.Contains(t, stderr.String(), "0 of 1 pages differ")
}

func TestRunCompare_Errors(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", "Hello")
	junk := filepath.Join(dir, "junk.pdf")
	require.NoError(t, os.WriteFile(junk, []byte("not a pdf"), 0o600))

	tests := map[string][]string{
		"missing b":    {"-a", a},
		"missing file": {"-a", a, "-b", filepath.Join(dir, "nope.pdf")},
		"invalid pdf":  {"-a", a, "-b", junk, "-o", filepath.Join(dir, "out.pdf")},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Error(t, runCompare(context.Background(), args, &stdout, &stderr))
		})
	}
}
