package region

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timing-report/internal/parser/summary"
	"github.com/timing-report/internal/testutil"
	apperrors "github.com/timing-report/pkg/errors"
	"github.com/timing-report/pkg/model"
)

func parseFixture(t *testing.T, text string) *model.SummaryDocument {
	t.Helper()
	doc, err := summary.NewParser().Parse(context.Background(), strings.NewReader(text))
	require.NoError(t, err)
	return doc
}

func rec(name string, indent int, mean float64) model.RegionRecord {
	return model.RegionRecord{Name: name, Indent: indent, Mean: mean}
}

func TestFindRegion(t *testing.T) {
	doc := parseFixture(t, testutil.BaselineSummary)

	r, idx, err := FindRegion(doc, "dyn_run")
	require.NoError(t, err)
	assert.Equal(t, "dyn_run", r.Name)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 10.0, r.Mean)
}

func TestFindRegion_FirstMatchWins(t *testing.T) {
	doc := &model.SummaryDocument{Records: []model.RegionRecord{
		rec("dup", 0, 1.0),
		rec("dup", 2, 2.0),
	}}

	r, idx, err := FindRegion(doc, "dup")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1.0, r.Mean)
}

func TestFindRegion_NotFound(t *testing.T) {
	doc := parseFixture(t, testutil.BaselineSummary)
	doc.Path = "base.summary"

	_, _, err := FindRegion(doc, "no_such_region")
	require.Error(t, err)

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.True(t, apperrors.IsRegionNotFound(err))
	assert.Equal(t, apperrors.CodeRegionNotFound, apperrors.GetErrorCode(err))
	assert.Equal(t, "no_such_region", nfe.Region)
	assert.Equal(t, "base.summary", nfe.Path)
	assert.Contains(t, nfe.Available, "dyn_run")
	assert.Contains(t, err.Error(), "base.summary")
	assert.LessOrEqual(t, len(nfe.Available), 30)

	// Sample is sorted and deduplicated.
	for i := 1; i < len(nfe.Available); i++ {
		assert.Less(t, nfe.Available[i-1], nfe.Available[i])
	}
}

func TestFindRegion_NameSampleBounded(t *testing.T) {
	records := make([]model.RegionRecord, 0, 100)
	for i := 0; i < 100; i++ {
		records = append(records, rec("region_"+string(rune('a'+i%26))+string(rune('a'+i/26)), 0, 1))
	}
	doc := &model.SummaryDocument{Records: records}

	_, _, err := FindRegion(doc, "missing")
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Len(t, nfe.Available, 30)
}

func TestCollectChildren(t *testing.T) {
	doc := parseFixture(t, testutil.BaselineSummary)

	_, idx, err := FindRegion(doc, "dyn_run")
	require.NoError(t, err)

	children := CollectChildren(doc, idx)
	require.Len(t, children, 3)
	assert.Equal(t, "dyn_core", children[0].Name)
	assert.Equal(t, "tracer_adv", children[1].Name)
	assert.Equal(t, "remap", children[2].Name)

	// The run stops at phys_run, a sibling of dyn_run.
	parent := doc.Records[idx]
	for _, c := range children {
		assert.Greater(t, c.Indent, parent.Indent)
	}
	next := doc.Records[idx+1+len(children)]
	assert.LessOrEqual(t, next.Indent, parent.Indent)
}

func TestCollectChildren_StopsAtSiblingIndent(t *testing.T) {
	// rows [A indent0], [B indent2], [C indent2], [D indent0]:
	// children of A are exactly B and C.
	doc := &model.SummaryDocument{Records: []model.RegionRecord{
		rec("A", 0, 10),
		rec("B", 2, 6),
		rec("C", 2, 9),
		rec("D", 0, 1),
	}}

	children := CollectChildren(doc, 0)
	require.Len(t, children, 2)
	assert.Equal(t, "B", children[0].Name)
	assert.Equal(t, "C", children[1].Name)
}

func TestCollectChildren_IncludesDeeperDescendants(t *testing.T) {
	// The stop condition only checks "indent <= parent"; grandchildren
	// inside the run are part of the child set.
	doc := &model.SummaryDocument{Records: []model.RegionRecord{
		rec("parent", 0, 10),
		rec("child", 2, 6),
		rec("grandchild", 4, 3),
		rec("sibling", 0, 1),
	}}

	children := CollectChildren(doc, 0)
	require.Len(t, children, 2)
	assert.Equal(t, "child", children[0].Name)
	assert.Equal(t, "grandchild", children[1].Name)
}

func TestCollectChildren_Empty(t *testing.T) {
	doc := parseFixture(t, testutil.BaselineSummary)

	_, idx, err := FindRegion(doc, "moist_proc")
	require.NoError(t, err)

	children := CollectChildren(doc, idx)
	assert.Empty(t, children, "leaf region has no children and that is not an error")
}

func TestCollectChildren_AtEndOfDocument(t *testing.T) {
	doc := &model.SummaryDocument{Records: []model.RegionRecord{
		rec("parent", 0, 10),
		rec("child", 2, 6),
	}}

	children := CollectChildren(doc, 0)
	require.Len(t, children, 1)
	assert.Equal(t, "child", children[0].Name)
}

func TestBuildRegistry_LastOccurrenceWins(t *testing.T) {
	doc := &model.SummaryDocument{Records: []model.RegionRecord{
		rec("dup", 0, 1.0),
		rec("unique", 2, 5.0),
		rec("dup", 2, 2.0),
	}}

	reg := BuildRegistry(doc)
	assert.Len(t, reg, 2)

	r, ok := reg.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, 2.0, r.Mean, "registry keeps the last occurrence")

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestBuildRegistry_SizeBound(t *testing.T) {
	doc := parseFixture(t, testutil.BaselineSummary)
	reg := BuildRegistry(doc)
	assert.LessOrEqual(t, len(reg), len(doc.Records))
}
