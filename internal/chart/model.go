// Package chart builds horizontal bar charts of comparison reports and
// renders them as SVG.
package chart

// Bar is one horizontal bar in the chart, fully positioned in pixel space.
type Bar struct {
	Name string `json:"name"`

	// Y is the top edge of the bar.
	Y      float64 `json:"y"`
	Height float64 `json:"height"`

	// BaseWidth is the baseline mean bar length.
	BaseWidth float64 `json:"baseWidth"`

	// WhiskerMin/WhiskerMax span the baseline min..max range.
	WhiskerMin float64 `json:"whiskerMin"`
	WhiskerMax float64 `json:"whiskerMax"`

	// OptWidth is the optimized mean overlay length, nil when the region
	// has no optimized counterpart.
	OptWidth *float64 `json:"optWidth,omitempty"`

	// Annotation is the classification text placed after the bar, empty
	// when the delta stayed under the threshold.
	Annotation string `json:"annotation,omitempty"`
}

// Tick is one x-axis gridline.
type Tick struct {
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

// Chart is the positioned chart model, independent of the output format.
type Chart struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`

	// PlotLeft/PlotWidth bound the bar area; labels render to the left of
	// PlotLeft and annotations to the right of the bars.
	PlotLeft  float64 `json:"plotLeft"`
	PlotWidth float64 `json:"plotWidth"`

	// XMax is the axis extent in seconds.
	XMax float64 `json:"xMax"`

	Ticks []Tick `json:"ticks"`
	Bars  []Bar  `json:"bars"`

	HasOptimized bool `json:"hasOptimized"`
}
