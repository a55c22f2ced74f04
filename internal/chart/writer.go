package chart

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/timing-report/pkg/writer"
)

// JSONWriter writes the chart model as JSON.
// This is a type alias over the common generic writer.
type JSONWriter = writer.JSONWriter[*Chart]

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter() *JSONWriter {
	return writer.NewJSONWriter[*Chart]()
}

const (
	baseBarColor = "#4878a8"
	optBarColor  = "#e8a33d"
	whiskerColor = "#2b2b2b"
	gridColor    = "#dddddd"
	textColor    = "#333333"
)

// SVGWriter renders a chart model as a standalone SVG document.
type SVGWriter struct{}

// NewSVGWriter creates a new SVG writer.
func NewSVGWriter() *SVGWriter {
	return &SVGWriter{}
}

// Write renders the chart to the writer.
func (w *SVGWriter) Write(c *Chart, out io.Writer) error {
	b := &svgBuilder{}

	b.addf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace">`,
		c.Width, c.Height, c.Width, c.Height)
	b.addf(`<rect width="%d" height="%d" fill="white"/>`, c.Width, c.Height)

	b.addf(`<text x="%.1f" y="22" font-size="15" fill="%s">%s</text>`,
		c.PlotLeft, textColor, escape(c.Title))
	if c.Subtitle != "" {
		b.addf(`<text x="%.1f" y="40" font-size="11" fill="%s">%s</text>`,
			c.PlotLeft, textColor, escape(c.Subtitle))
	}

	bottom := float64(c.Height) - bottomMargin
	for _, tick := range c.Ticks {
		b.addf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`,
			tick.X, topMargin-8, tick.X, bottom, gridColor)
		b.addf(`<text x="%.1f" y="%.1f" font-size="10" fill="%s" text-anchor="middle">%s</text>`,
			tick.X, bottom+16, textColor, escape(tick.Label))
	}

	for _, bar := range c.Bars {
		w.writeBar(b, c, &bar)
	}

	if c.HasOptimized {
		w.writeLegend(b, c)
	}

	b.add(`</svg>`)

	_, err := io.WriteString(out, b.String())
	if err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

func (w *SVGWriter) writeBar(b *svgBuilder, c *Chart, bar *Bar) {
	x0 := c.PlotLeft
	mid := bar.Y + bar.Height/2

	// Region label, right-aligned against the plot edge.
	b.addf(`<text x="%.1f" y="%.1f" font-size="11" fill="%s" text-anchor="end" dominant-baseline="middle">%s</text>`,
		x0-8, mid, textColor, escape(bar.Name))

	// Baseline bar with its min..max whisker.
	b.addf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
		x0, bar.Y, bar.BaseWidth, bar.Height, baseBarColor)
	b.addf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"/>`,
		x0+bar.WhiskerMin, mid, x0+bar.WhiskerMax, mid, whiskerColor)
	for _, wx := range []float64{bar.WhiskerMin, bar.WhiskerMax} {
		b.addf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"/>`,
			x0+wx, mid-4, x0+wx, mid+4, whiskerColor)
	}

	// Optimized overlay, a thinner bar inside the baseline row.
	annotationX := x0 + bar.BaseWidth
	if bar.OptWidth != nil {
		h := bar.Height * 0.45
		b.addf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
			x0, mid-h/2, *bar.OptWidth, h, optBarColor)
		if *bar.OptWidth > annotationX-x0 {
			annotationX = x0 + *bar.OptWidth
		}
	}

	if bar.Annotation != "" {
		b.addf(`<text x="%.1f" y="%.1f" font-size="10" fill="%s" dominant-baseline="middle">%s</text>`,
			annotationX+8, mid, textColor, escape(bar.Annotation))
	}
}

func (w *SVGWriter) writeLegend(b *svgBuilder, c *Chart) {
	x := c.PlotLeft + c.PlotWidth - 150
	b.addf(`<rect x="%.1f" y="10" width="12" height="12" fill="%s"/>`, x, baseBarColor)
	b.addf(`<text x="%.1f" y="20" font-size="10" fill="%s">baseline</text>`, x+18, textColor)
	b.addf(`<rect x="%.1f" y="26" width="12" height="12" fill="%s"/>`, x, optBarColor)
	b.addf(`<text x="%.1f" y="36" font-size="10" fill="%s">optimized</text>`, x+18, textColor)
}

// WriteToFile renders the chart as SVG to a file.
func (w *SVGWriter) WriteToFile(c *Chart, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.Write(c, file)
}

type svgBuilder struct {
	sb strings.Builder
}

func (b *svgBuilder) add(line string) {
	b.sb.WriteString(line)
	b.sb.WriteByte('\n')
}

func (b *svgBuilder) addf(format string, args ...interface{}) {
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteByte('\n')
}

func (b *svgBuilder) String() string {
	return b.sb.String()
}

func escape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
