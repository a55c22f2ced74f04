package writer

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timing-report/pkg/model"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func sampleReport(hasOptimized bool) *model.ComparisonReport {
	return &model.ComparisonReport{
		Region:       "dyn_run",
		ParentMean:   10,
		HasOptimized: hasOptimized,
		Rows: []model.ComparisonRow{
			{
				Name:           "tracer_adv",
				BaseMean:       9,
				BaseMin:        8.8,
				BaseMax:        9.2,
				BaseCount:      intPtr(240),
				BasePETs:       intPtr(8),
				BasePEs:        intPtr(8),
				ShareOfParent:  floatPtr(90),
				HasCounterpart: true,
				OptMean:        floatPtr(9.45),
				OptMin:         floatPtr(9.3),
				OptMax:         floatPtr(9.6),
				Delta:          floatPtr(-5),
				Label:          model.ClassSlower,
			},
			{
				Name:          "remap",
				BaseMean:      3,
				BaseMin:       2.9,
				BaseMax:       3.1,
				ShareOfParent: floatPtr(30),
			},
		},
	}
}

func TestCSVWriter_BaselineOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter().Write(sampleReport(false), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, baselineHeader, records[0])
	assert.Equal(t, "tracer_adv", records[1][0])
	assert.Equal(t, "9.000000", records[1][1])
	assert.Equal(t, "240", records[1][4])
	// No optimized columns in a baseline-only report.
	assert.Len(t, records[1], len(baselineHeader))
}

func TestCSVWriter_WithOptimized(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter().Write(sampleReport(true), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	wantCols := len(baselineHeader) + len(optimizedHeader)
	assert.Len(t, records[0], wantCols)

	withOpt := records[1]
	assert.Equal(t, "9.450000", withOpt[8])
	assert.Equal(t, "slower", withOpt[len(withOpt)-1])

	// Missing counterpart renders as empty cells, never drops the row.
	noOpt := records[2]
	assert.Equal(t, "remap", noOpt[0])
	assert.Equal(t, "", noOpt[8])
	assert.Equal(t, "", noOpt[len(noOpt)-1])
}

func TestJSONWriter_Report(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrettyJSONWriter[*model.ComparisonReport]()
	require.NoError(t, w.Write(sampleReport(true), &buf))

	out := buf.String()
	assert.Contains(t, out, `"region": "dyn_run"`)
	assert.Contains(t, out, `"label": "slower"`)
	// Nullable fields serialize as explicit nulls for missing counterparts.
	assert.Contains(t, out, `"optimized_mean_s": null`)
}
