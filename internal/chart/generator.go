package chart

import (
	"fmt"
	"math"

	apperrors "github.com/timing-report/pkg/errors"
	"github.com/timing-report/pkg/model"
)

// GeneratorOptions holds configuration options for the chart generator.
type GeneratorOptions struct {
	// Width is the total image width in pixels.
	Width int

	// BarHeight is the height of one baseline bar.
	BarHeight float64

	// RowGap is the vertical spacing between bars.
	RowGap float64

	// LabelWidth reserves space for region names left of the plot.
	LabelWidth float64

	// AnnotationWidth reserves space for classification text right of the
	// plot.
	AnnotationWidth float64
}

// DefaultGeneratorOptions returns default generator options.
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		Width:           960,
		BarHeight:       18,
		RowGap:          10,
		LabelWidth:      230,
		AnnotationWidth: 130,
	}
}

const (
	topMargin    = 56.0
	bottomMargin = 44.0
	tickCount    = 4
)

// Generator builds chart models from comparison reports.
type Generator struct {
	opts *GeneratorOptions
}

// NewGenerator creates a new chart generator.
func NewGenerator(opts *GeneratorOptions) *Generator {
	if opts == nil {
		opts = DefaultGeneratorOptions()
	}
	return &Generator{opts: opts}
}

// Generate positions the report rows as horizontal bars. Rows keep the
// report's ranking order, the largest baseline mean on top.
func (g *Generator) Generate(report *model.ComparisonReport) (*Chart, error) {
	if report == nil || len(report.Rows) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "chart: report has no rows")
	}

	xmax := axisExtent(report.Rows)
	if xmax <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "chart: all rows have zero extent")
	}

	plotWidth := float64(g.opts.Width) - g.opts.LabelWidth - g.opts.AnnotationWidth
	scale := plotWidth / xmax

	rowPitch := g.opts.BarHeight + g.opts.RowGap
	height := topMargin + rowPitch*float64(len(report.Rows)) + bottomMargin

	c := &Chart{
		Width:        g.opts.Width,
		Height:       int(math.Ceil(height)),
		Title:        fmt.Sprintf("Child regions of %s by baseline mean", report.Region),
		PlotLeft:     g.opts.LabelWidth,
		PlotWidth:    plotWidth,
		XMax:         xmax,
		HasOptimized: report.HasOptimized,
	}
	if report.HasOptimized {
		c.Subtitle = fmt.Sprintf("baseline vs optimized, annotated beyond %.1f%%", report.Threshold)
	}

	for i := 1; i <= tickCount; i++ {
		v := xmax * float64(i) / tickCount
		c.Ticks = append(c.Ticks, Tick{
			X:     g.opts.LabelWidth + v*scale,
			Label: fmt.Sprintf("%.2fs", v),
		})
	}

	for i, row := range report.Rows {
		bar := Bar{
			Name:       row.Name,
			Y:          topMargin + rowPitch*float64(i),
			Height:     g.opts.BarHeight,
			BaseWidth:  row.BaseMean * scale,
			WhiskerMin: row.BaseMin * scale,
			WhiskerMax: row.BaseMax * scale,
		}
		if row.OptMean != nil {
			w := *row.OptMean * scale
			bar.OptWidth = &w
		}
		bar.Annotation = annotation(&row)
		c.Bars = append(c.Bars, bar)
	}

	return c, nil
}

// axisExtent returns the largest value a bar or whisker can reach, padded
// so the longest bar does not touch the plot edge.
func axisExtent(rows []model.ComparisonRow) float64 {
	var max float64
	for _, row := range rows {
		max = math.Max(max, row.BaseMax)
		if row.OptMax != nil {
			max = math.Max(max, *row.OptMax)
		}
		if row.OptMean != nil {
			max = math.Max(max, *row.OptMean)
		}
	}
	return max * 1.05
}

// annotation renders the classification text for a bar, e.g. "20.0% faster".
func annotation(row *model.ComparisonRow) string {
	if row.Label == model.ClassNone || row.PercentDelta == nil {
		return ""
	}
	return fmt.Sprintf("%.1f%% %s", math.Abs(*row.PercentDelta), row.Label)
}
