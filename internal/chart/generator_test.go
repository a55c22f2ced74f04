package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/timing-report/pkg/errors"
	"github.com/timing-report/pkg/model"
)

func floatPtr(v float64) *float64 { return &v }

func testReport() *model.ComparisonReport {
	return &model.ComparisonReport{
		Region:       "dyn_run",
		ParentMean:   24,
		TopN:         12,
		Threshold:    5,
		HasOptimized: true,
		Rows: []model.ComparisonRow{
			{
				Name:           "tracer_adv",
				BaseMean:       9,
				BaseMin:        8.8,
				BaseMax:        9.2,
				HasCounterpart: true,
				OptMean:        floatPtr(9.45),
				OptMax:         floatPtr(9.6),
				PercentDelta:   floatPtr(-5),
				Label:          model.ClassSlower,
			},
			{
				Name:     "dyn_core",
				BaseMean: 6,
				BaseMin:  5.9,
				BaseMax:  6.1,
			},
		},
	}
}

func TestGenerator_Generate_Basic(t *testing.T) {
	gen := NewGenerator(nil)
	c, err := gen.Generate(testReport())

	require.NoError(t, err)
	require.NotNil(t, c)
	require.Len(t, c.Bars, 2)

	assert.Equal(t, 960, c.Width)
	assert.True(t, c.HasOptimized)
	assert.Len(t, c.Ticks, tickCount)

	// Axis extends 5% past the largest value (optimized max 9.6).
	assert.InDelta(t, 9.6*1.05, c.XMax, 1e-9)
}

func TestGenerator_Generate_RankingOrderTopToBottom(t *testing.T) {
	c, err := NewGenerator(nil).Generate(testReport())
	require.NoError(t, err)

	// Rows keep the report order, so the first (largest) bar sits highest.
	assert.Equal(t, "tracer_adv", c.Bars[0].Name)
	assert.Equal(t, "dyn_core", c.Bars[1].Name)
	assert.Less(t, c.Bars[0].Y, c.Bars[1].Y)
}

func TestGenerator_Generate_BarGeometry(t *testing.T) {
	c, err := NewGenerator(nil).Generate(testReport())
	require.NoError(t, err)

	scale := c.PlotWidth / c.XMax
	top := c.Bars[0]
	assert.InDelta(t, 9*scale, top.BaseWidth, 1e-9)
	assert.InDelta(t, 8.8*scale, top.WhiskerMin, 1e-9)
	assert.InDelta(t, 9.2*scale, top.WhiskerMax, 1e-9)
	require.NotNil(t, top.OptWidth)
	assert.InDelta(t, 9.45*scale, *top.OptWidth, 1e-9)
	assert.Equal(t, "5.0% slower", top.Annotation)

	// No counterpart means no overlay and no annotation.
	assert.Nil(t, c.Bars[1].OptWidth)
	assert.Empty(t, c.Bars[1].Annotation)
}

func TestGenerator_Generate_EmptyReport(t *testing.T) {
	_, err := NewGenerator(nil).Generate(&model.ComparisonReport{Region: "dyn_run"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetErrorCode(err))
}

func TestSVGWriter_Write(t *testing.T) {
	c, err := NewGenerator(nil).Generate(testReport())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewSVGWriter().Write(c, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, "tracer_adv")
	assert.Contains(t, out, "5.0% slower")
	assert.Contains(t, out, "baseline")
	assert.Contains(t, out, "optimized")
}

func TestSVGWriter_EscapesNames(t *testing.T) {
	report := testReport()
	report.Rows[0].Name = "a<b>&c"

	c, err := NewGenerator(nil).Generate(report)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewSVGWriter().Write(c, &buf))

	out := buf.String()
	assert.NotContains(t, out, "a<b>&c")
	assert.Contains(t, out, "a&lt;b&gt;&amp;c")
}
