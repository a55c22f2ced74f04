// Package statistics derives ranked comparison rows from region timing data.
package statistics

import (
	"sort"

	"github.com/timing-report/internal/region"
	"github.com/timing-report/pkg/model"
)

const (
	// DefaultTopN is the default number of children to report.
	DefaultTopN = 12

	// DefaultThresholdPct is the default annotation threshold in
	// percentage points. It applies to the percentage delta in both
	// comparison modes.
	DefaultThresholdPct = 5.0
)

// Comparator ranks a parent's children by baseline mean time and aligns
// them against an optional optimized document.
type Comparator struct {
	topN      int
	threshold float64
	mode      model.CompareMode
}

// Option configures the Comparator.
type Option func(*Comparator)

// WithTopN sets the number of top children to return.
func WithTopN(n int) Option {
	return func(c *Comparator) {
		c.topN = n
	}
}

// WithThreshold sets the annotation threshold in percentage points.
func WithThreshold(pct float64) Option {
	return func(c *Comparator) {
		c.threshold = pct
	}
}

// WithMode sets the delta mode.
func WithMode(mode model.CompareMode) Option {
	return func(c *Comparator) {
		c.mode = mode
	}
}

// NewComparator creates a new Comparator.
func NewComparator(opts ...Option) *Comparator {
	c := &Comparator{
		topN:      DefaultTopN,
		threshold: DefaultThresholdPct,
		mode:      model.ModePercent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare ranks the baseline children of parent and, when optimized is
// non-nil, aligns each selected child against it by name.
//
// Children are sorted by descending baseline mean; ties keep document
// order (the sort must be stable so identical inputs always give identical
// row order). The result is truncated to topN; fewer children than topN is
// not an error. Rows whose counterpart is missing, or whose delta hits a
// non-positive denominator, are emitted with nil fields rather than
// dropped.
func (c *Comparator) Compare(parent model.RegionRecord, children []model.RegionRecord, optimized region.Registry) []model.ComparisonRow {
	ranked := make([]model.RegionRecord, len(children))
	copy(ranked, children)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Mean > ranked[j].Mean
	})

	if c.topN < len(ranked) {
		ranked = ranked[:c.topN]
	}

	rows := make([]model.ComparisonRow, 0, len(ranked))
	for _, child := range ranked {
		row := model.ComparisonRow{
			Name:      child.Name,
			BaseMean:  child.Mean,
			BaseMin:   child.Min,
			BaseMax:   child.Max,
			BaseCount: child.Count,
			BasePETs:  child.PETs,
			BasePEs:   child.PEs,
		}

		if parent.Mean > 0 {
			share := 100.0 * child.Mean / parent.Mean
			row.ShareOfParent = &share
		}

		if optimized != nil {
			c.align(&row, child, optimized)
		}

		rows = append(rows, row)
	}

	return rows
}

// align fills the optimized side of a row from the counterpart registry.
func (c *Comparator) align(row *model.ComparisonRow, child model.RegionRecord, optimized region.Registry) {
	opt, ok := optimized.Lookup(child.Name)
	if !ok {
		// No counterpart: the row stays in the report, flagged.
		return
	}

	row.HasCounterpart = true
	row.OptMean = &opt.Mean
	row.OptMin = &opt.Min
	row.OptMax = &opt.Max
	row.OptCount = opt.Count
	row.OptPETs = opt.PETs
	row.OptPEs = opt.PEs

	row.PercentDelta = percentDelta(child.Mean, opt.Mean)

	switch c.mode {
	case model.ModeSpeedup:
		row.Delta = speedup(child.Mean, opt.Mean)
	default:
		row.Delta = percentDelta(child.Mean, opt.Mean)
	}

	row.Label = c.classify(row.PercentDelta)
}

// classify attaches a directional label when the absolute percentage delta
// reaches the threshold. A delta of exactly zero is never labeled.
func (c *Comparator) classify(pct *float64) model.Classification {
	if pct == nil || *pct == 0 {
		return model.ClassNone
	}
	abs := *pct
	if abs < 0 {
		abs = -abs
	}
	if abs < c.threshold {
		return model.ClassNone
	}
	if *pct > 0 {
		return model.ClassFaster
	}
	return model.ClassSlower
}

// percentDelta is 100*(base-opt)/base, or nil when base is not positive.
func percentDelta(base, opt float64) *float64 {
	if base <= 0 {
		return nil
	}
	d := 100.0 * (base - opt) / base
	return &d
}

// speedup is base/opt, or nil when opt is not positive.
func speedup(base, opt float64) *float64 {
	if opt <= 0 {
		return nil
	}
	s := base / opt
	return &s
}
