package summary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timing-report/internal/parser"
	"github.com/timing-report/internal/testutil"
	apperrors "github.com/timing-report/pkg/errors"
)

func TestParser_Parse_BaselineFixture(t *testing.T) {
	p := NewParser()
	doc, err := p.Parse(context.Background(), strings.NewReader(testutil.BaselineSummary))

	require.NoError(t, err)
	require.NotNil(t, doc)

	// 8 region rows; the banner and header lines contribute nothing.
	assert.Len(t, doc.Records, 8)

	root := doc.Records[0]
	assert.Equal(t, "[ESMF]", root.Name)
	assert.Equal(t, 2, root.Indent)
	require.NotNil(t, root.PETs)
	assert.Equal(t, 8, *root.PETs)
	require.NotNil(t, root.Count)
	assert.Equal(t, 1, *root.Count)
	assert.Equal(t, 20.0, root.Mean)
	assert.Equal(t, 19.9, root.Min)
	assert.Equal(t, 4, root.MinPET)
	assert.Equal(t, 20.1, root.Max)
	assert.Equal(t, 1, root.MaxPET)
}

func TestParser_Parse_NameWithSpaces(t *testing.T) {
	p := NewParser()
	doc, err := p.Parse(context.Background(), strings.NewReader(testutil.BaselineSummary))
	require.NoError(t, err)

	// The lazy name group must keep multi-word names intact without
	// swallowing the PETs/PEs columns.
	assert.Equal(t, "[ensemble] RunPhase1", doc.Records[1].Name)
	require.NotNil(t, doc.Records[1].PETs)
	assert.Equal(t, 8, *doc.Records[1].PETs)
}

func TestParser_Parse_MultipleSentinel(t *testing.T) {
	p := NewParser()
	doc, err := p.Parse(context.Background(), strings.NewReader(testutil.BaselineSummary))
	require.NoError(t, err)

	var dynRun *int
	found := false
	for _, r := range doc.Records {
		if r.Name == "dyn_run" {
			dynRun = r.Count
			found = true
		}
	}
	require.True(t, found)
	assert.Nil(t, dynRun, "MULTIPLE count must decode to nil, not a magic number")
}

func TestParser_Parse_ShortVariant(t *testing.T) {
	p := NewParser()
	doc, err := p.Parse(context.Background(), strings.NewReader(testutil.ShortVariantSummary))
	require.NoError(t, err)

	require.Len(t, doc.Records, 3)
	for _, r := range doc.Records {
		assert.Nil(t, r.PETs, "short variant has no PETs column (%s)", r.Name)
		assert.Nil(t, r.PEs)
	}
	assert.Equal(t, "dyn_run", doc.Records[1].Name)
	assert.Nil(t, doc.Records[1].Count)
	require.NotNil(t, doc.Records[2].Count)
	assert.Equal(t, 240, *doc.Records[2].Count)
}

func TestParser_Parse_IndentFromWhitespaceOnly(t *testing.T) {
	input := "name_a 1 1.0000 0.9000 0 1.1000 3\n" +
		"    name_b 2 2.0000 1.9000 1 2.1000 2\n"

	p := NewParser()
	doc, err := p.Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Records, 2)

	assert.Equal(t, 0, doc.Records[0].Indent)
	assert.Equal(t, 4, doc.Records[1].Indent)
}

func TestParser_Parse_SkipsUnrelatedLines(t *testing.T) {
	input := `Some banner text
------------------------------
region_a 1 1.0000 0.9000 0 1.1000 3

not a row at all
region_b MULTIPLE 2.0000 1.9000 1 2.1000 2
mean without fraction 1 2 0 3 1
`

	p := NewParser()
	doc, err := p.Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, doc.Records, 2)
	assert.Equal(t, "region_a", doc.Records[0].Name)
	assert.Equal(t, "region_b", doc.Records[1].Name)
}

func TestParser_Parse_UnrecognizedDocument(t *testing.T) {
	input := `This file has headers
and separators
but no region rows at all`

	p := NewParser()
	doc, err := p.Parse(context.Background(), strings.NewReader(input))

	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, parser.ErrUnrecognizedDocument))
	assert.True(t, apperrors.IsUnrecognizedDocument(err))
	assert.Equal(t, apperrors.CodeUnrecognizedDocument, apperrors.GetErrorCode(err))
}

func TestParser_Parse_EmptyInput(t *testing.T) {
	p := NewParser()
	_, err := p.Parse(context.Background(), strings.NewReader(""))
	assert.True(t, errors.Is(err, parser.ErrUnrecognizedDocument))
}

func TestParser_Parse_Idempotent(t *testing.T) {
	p := NewParser()
	doc1, err := p.Parse(context.Background(), strings.NewReader(testutil.BaselineSummary))
	require.NoError(t, err)
	doc2, err := p.Parse(context.Background(), strings.NewReader(testutil.BaselineSummary))
	require.NoError(t, err)

	assert.Equal(t, doc1.Records, doc2.Records)
}

func TestParser_Parse_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewParser()
	_, err := p.Parse(ctx, strings.NewReader(testutil.BaselineSummary))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.summary")
	require.NoError(t, os.WriteFile(path, []byte(testutil.BaselineSummary), 0644))

	p := NewParser()
	doc, err := p.ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Len(t, doc.Records, 8)
}

func TestParser_ParseFile_ErrorCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bogus.summary")
	require.NoError(t, os.WriteFile(path, []byte("nothing here"), 0644))

	p := NewParser()
	_, err := p.ParseFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus.summary")
	assert.True(t, errors.Is(err, parser.ErrUnrecognizedDocument))
	assert.True(t, apperrors.IsUnrecognizedDocument(err))
}

func TestTokenizeLine_MostSpecificFirst(t *testing.T) {
	// With PETs/PEs present, the long variant must win; the short variant
	// would otherwise fold "8 8" into the name.
	rec, ok := tokenizeLine("  dyn_core                   8      8    240      6.0000      5.9000      2        6.1000      5")
	require.True(t, ok)
	assert.Equal(t, "dyn_core", rec.Name)
	require.NotNil(t, rec.PETs)
	assert.Equal(t, 8, *rec.PETs)
	require.NotNil(t, rec.PEs)
	assert.Equal(t, 8, *rec.PEs)
}
